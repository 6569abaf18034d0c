package ledger

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"finpal/models"
)

// FilterAll 不过滤类别
const FilterAll = "all"

// SortKey 排序方式
type SortKey string

const (
	// SortByDate 按消费时间倒序（最新在前）
	SortByDate SortKey = "date"
	// SortByAmount 按金额倒序
	SortByAmount SortKey = "amount"
)

// Draft 用户填写的待提交消费草稿
// Amount 为表单原始文本，校验时解析；OccurredAt 为零值时取当前时间
type Draft struct {
	Category    string
	Amount      string
	PaymentMode string
	Description string
	OccurredAt  time.Time
}

// ValidatedDraft 通过本地校验的草稿，金额已解析
type ValidatedDraft struct {
	Category    string
	Amount      float64
	PaymentMode string
	Description string
	OccurredAt  time.Time
}

// CategoryStat 单个类别的聚合
type CategoryStat struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// Store 消费记录持久层契约
// 会话无效时返回 ErrUnauthenticated（可包装）
type Store interface {
	FetchExpenses(ctx context.Context, userID uint) ([]models.Expense, error)
	SubmitExpense(ctx context.Context, userID uint, draft ValidatedDraft) (models.Expense, error)
}

// TotalCache 会话级总额缓存
// 仅用于首次加载完成前避免总额闪零，永远不是数据源；登出或用户清除数据时失效
type TotalCache interface {
	GetTotal(sessionKey string) (float64, bool)
	SetTotal(sessionKey string, total float64)
	ClearTotal(sessionKey string)
}

// 本地合成 ID 的起始偏移，避开服务端自增 ID 区间
const localIDBase uint = 1 << 30

// Ledger 单个用户会话的消费账本视图模型
// 持有该会话的全部消费记录与派生聚合（总额、分类统计），
// 所有修改操作在互斥锁内生效；远端往返不持锁
type Ledger struct {
	store Store
	cache TotalCache

	userID uint

	mu         sync.Mutex
	records    []models.Expense
	total      float64
	breakdown  map[string]CategoryStat
	loaded     bool
	seeded     bool   // 总额是否已从缓存预热（首次加载完成前）
	loadSeq    uint64 // 已发起的加载序号
	appliedSeq uint64 // 已生效的加载序号，过期结果直接丢弃
	localSeq   uint   // 本地合成 ID 计数，只增不复用
}

// New 创建账本视图模型
func New(store Store, cache TotalCache, userID uint) *Ledger {
	return &Ledger{
		store:     store,
		cache:     cache,
		userID:    userID,
		breakdown: make(map[string]CategoryStat),
	}
}

func (l *Ledger) sessionKey() string {
	return "user:" + strconv.FormatUint(uint64(l.userID), 10)
}

// Load 从持久层重新加载权威记录（整体替换，不合并）
// 会话无效时清空全部本地状态并返回 ErrUnauthenticated；
// 网络或服务端错误返回 LoadError 且本地状态不变；
// 若期间已有更新的 Load 生效，过期结果被丢弃
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	l.loadSeq++
	seq := l.loadSeq
	l.mu.Unlock()

	records, err := l.store.FetchExpenses(ctx, l.userID)

	l.mu.Lock()
	defer l.mu.Unlock()

	// 更新的加载已生效则过期结果整体丢弃，包括错误结果：
	// 较新的加载成功说明会话在更晚的时刻仍然有效，
	// 过期的未认证响应不得清掉较新的数据
	if seq < l.appliedSeq {
		return nil
	}

	if errors.Is(err, ErrUnauthenticated) {
		// 绝不把上一个会话的记录当作有效数据保留
		l.records = nil
		l.total = 0
		l.breakdown = make(map[string]CategoryStat)
		l.loaded = false
		l.seeded = false
		return ErrUnauthenticated
	}
	if err != nil {
		return &LoadError{Err: err}
	}
	l.appliedSeq = seq

	l.records = make([]models.Expense, len(records))
	copy(l.records, records)
	l.recompute()
	l.loaded = true
	l.cache.SetTotal(l.sessionKey(), l.total)
	return nil
}

// recompute 全量重算总额与分类统计（调用方持锁）
// 本领域集合规模很小，加载时全量重算足够快
func (l *Ledger) recompute() {
	l.total = 0
	l.breakdown = make(map[string]CategoryStat, len(l.records))
	for _, r := range l.records {
		l.total += r.Amount
		stat := l.breakdown[r.Category]
		stat.Count++
		stat.Total += r.Amount
		l.breakdown[r.Category] = stat
	}
}

// ValidateDraft 本地校验草稿并解析金额
// 与表单的必填约束一致：类别、支付方式非空，金额可解析且非负
func ValidateDraft(draft Draft) (ValidatedDraft, error) {
	category := strings.TrimSpace(draft.Category)
	if category == "" {
		return ValidatedDraft{}, &ValidationError{Field: "category", Message: "类别不能为空"}
	}
	mode := strings.TrimSpace(draft.PaymentMode)
	if mode == "" {
		return ValidatedDraft{}, &ValidationError{Field: "payment_mode", Message: "支付方式不能为空"}
	}
	amountStr := strings.TrimSpace(draft.Amount)
	if amountStr == "" {
		return ValidatedDraft{}, &ValidationError{Field: "amount", Message: "金额不能为空"}
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return ValidatedDraft{}, &ValidationError{Field: "amount", Message: "金额必须是数字"}
	}
	// ParseFloat 也接受 "NaN"/"Inf"，这类值会污染运行总额
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ValidatedDraft{}, &ValidationError{Field: "amount", Message: "金额必须是有限数字"}
	}
	if amount < 0 {
		return ValidatedDraft{}, &ValidationError{Field: "amount", Message: "金额不能为负数"}
	}

	occurredAt := draft.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return ValidatedDraft{
		Category:    category,
		Amount:      amount,
		PaymentMode: mode,
		Description: strings.TrimSpace(draft.Description),
		OccurredAt:  occurredAt,
	}, nil
}

// AddExpense 校验并提交一条消费草稿
// 校验失败返回 ValidationError 且不触达持久层；
// 提交失败返回 SubmissionError 且本地状态完全不变（不做乐观插入），草稿可原样重试；
// 提交成功后原子地追加记录、增量累加总额并更新对应类别统计
func (l *Ledger) AddExpense(ctx context.Context, draft Draft) (models.Expense, error) {
	validated, err := ValidateDraft(draft)
	if err != nil {
		return models.Expense{}, err
	}

	// 远端往返不持锁，避免慢网络阻塞同会话的读取
	record, err := l.store.SubmitExpense(ctx, l.userID, validated)
	if errors.Is(err, ErrUnauthenticated) {
		return models.Expense{}, ErrUnauthenticated
	}
	if err != nil {
		return models.Expense{}, &SubmissionError{Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// 服务端未分配 ID 时本地合成单调递增 ID，永不复用
	if record.ID == 0 {
		l.localSeq++
		record.ID = localIDBase + l.localSeq
	}

	// 首次加载完成前，总额先用缓存预热再增量累加
	// （与页面会话缓存行为一致，避免总额闪零）
	if !l.loaded && !l.seeded {
		if cached, ok := l.cache.GetTotal(l.sessionKey()); ok {
			l.total = cached
		}
		l.seeded = true
	}

	l.records = append(l.records, record)
	l.total += record.Amount
	stat := l.breakdown[record.Category]
	stat.Count++
	stat.Total += record.Amount
	l.breakdown[record.Category] = stat
	l.cache.SetTotal(l.sessionKey(), l.total)

	return record, nil
}

// occurredAt 排序用的生效时间：消费时间缺失时退回提交时间
func occurredAt(r *models.Expense) time.Time {
	if r.ExpenseTime.IsZero() {
		return r.CreatedAt
	}
	return r.ExpenseTime
}

// View 派生展示序列：先按类别过滤（FilterAll 不过滤），再排序
// 纯查询，不修改内部状态，可用不同参数反复调用
// 排序规则：
//   - date: 生效时间倒序，时间相同按提交时间倒序，再相同保持插入顺序
//   - amount: 金额倒序，金额相同按生效时间倒序，再相同保持插入顺序
func (l *Ledger) View(filterCategory string, sortKey SortKey) []models.Expense {
	l.mu.Lock()
	snapshot := make([]models.Expense, 0, len(l.records))
	for _, r := range l.records {
		if filterCategory == FilterAll || filterCategory == "" || r.Category == filterCategory {
			snapshot = append(snapshot, r)
		}
	}
	l.mu.Unlock()

	switch sortKey {
	case SortByAmount:
		sort.SliceStable(snapshot, func(i, j int) bool {
			if snapshot[i].Amount != snapshot[j].Amount {
				return snapshot[i].Amount > snapshot[j].Amount
			}
			return occurredAt(&snapshot[i]).After(occurredAt(&snapshot[j]))
		})
	default: // SortByDate
		sort.SliceStable(snapshot, func(i, j int) bool {
			ti, tj := occurredAt(&snapshot[i]), occurredAt(&snapshot[j])
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
		})
	}
	return snapshot
}

// CategoryBreakdown 按类别聚合 {数量, 总额}，仅包含实际出现过的类别
func (l *Ledger) CategoryBreakdown() map[string]CategoryStat {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]CategoryStat, len(l.breakdown))
	for k, v := range l.breakdown {
		out[k] = v
	}
	return out
}

// TotalAmount 当前已加载全部记录的运行总额（不随筛选变化）
// 首次 Load 完成前返回缓存中的值以避免闪零，加载完成后以新计算值为准
func (l *Ledger) TotalAmount() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded || l.seeded {
		return l.total
	}
	if cached, ok := l.cache.GetTotal(l.sessionKey()); ok {
		return cached
	}
	return 0
}

// Loaded 是否已完成首次加载
func (l *Ledger) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Size 当前已加载记录条数
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
