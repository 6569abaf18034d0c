package api

import (
	"errors"
	"sort"
	"time"

	"finpal/database"
	"finpal/ledger"
	"finpal/middleware"
	"finpal/models"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 消费记录处理器
// 读写都经过用户会话账本（ledger.Ledger），而不是直接查库，
// 保证列表、总额与分类统计三者观察一致
type ExpenseHandler struct {
	ledgers *ledger.Manager
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(ledgers *ledger.Manager) *ExpenseHandler {
	return &ExpenseHandler{ledgers: ledgers}
}

// CreateExpenseRequest 创建消费记录请求
// 金额以文本提交，由账本统一校验解析（空、非数字、负数均拒绝）
type CreateExpenseRequest struct {
	Category    string `json:"category" example:"food"`
	Amount      string `json:"amount" example:"199.50"`
	PaymentMode string `json:"payment_mode" example:"upi"`
	Description string `json:"description" example:"午餐"`
	ExpenseTime string `json:"expense_time" example:"2024-01-15 12:30:00"`
}

// ExpenseView 消费记录展示结构（附展示名，未知类别归入“其他”）
type ExpenseView struct {
	models.Expense
	CategoryLabel    string `json:"category_label"`
	PaymentModeLabel string `json:"payment_mode_label"`
}

func toView(records []models.Expense) []ExpenseView {
	views := make([]ExpenseView, 0, len(records))
	for _, r := range records {
		views = append(views, ExpenseView{
			Expense:          r,
			CategoryLabel:    models.CategoryLabel(r.Category),
			PaymentModeLabel: models.PaymentModeLabel(r.PaymentMode),
		})
	}
	return views
}

// ledgerError 统一映射账本错误到 HTTP 响应
func ledgerError(c *gin.Context, err error) {
	var vErr *ledger.ValidationError
	var loadErr *ledger.LoadError
	var subErr *ledger.SubmissionError

	switch {
	case errors.As(err, &vErr):
		BadRequest(c, vErr.Error())
	case errors.Is(err, ledger.ErrUnauthenticated):
		Unauthorized(c, "登录已失效，请重新登录")
	case errors.As(err, &loadErr):
		InternalError(c, SafeErrorMessage(loadErr.Err, "加载消费记录失败，请稍后重试"))
	case errors.As(err, &subErr):
		// 本地状态未变更，草稿可原样重试
		BadGateway(c, SafeErrorMessage(subErr.Err, "保存失败，请重试"))
	default:
		InternalError(c, SafeErrorMessage(err, "操作失败"))
	}
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 新增一条消费记录。类别、金额、支付方式必填；金额须为非负数字；消费时间缺省为当前时间。提交失败时本地不产生任何变更，可原样重试。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=ExpenseView} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 502 {object} Response "保存失败，可重试"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	draft := ledger.Draft{
		Category:    req.Category,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Description: req.Description,
	}
	if req.ExpenseTime != "" {
		expenseTime, err := time.ParseInLocation("2006-01-02 15:04:05", req.ExpenseTime, time.Local)
		if err != nil {
			// 兼容前端只传日期的情况
			expenseTime, err = time.ParseInLocation("2006-01-02", req.ExpenseTime, time.Local)
			if err != nil {
				BadRequest(c, "时间格式错误，应为: 2006-01-02 15:04:05 或 2006-01-02")
				return
			}
		}
		draft.OccurredAt = expenseTime
	}

	l := h.ledgers.ForUser(userID)
	record, err := l.AddExpense(c.Request.Context(), draft)
	if err != nil {
		ledgerError(c, err)
		return
	}

	middleware.CountExpenseCreated()

	views := toView([]models.Expense{record})
	SuccessWithMessage(c, "创建成功", views[0])
}

// ExpenseListData 消费记录列表数据
type ExpenseListData struct {
	Total    int           `json:"total"`
	Category string        `json:"category"`
	Sort     string        `json:"sort"`
	List     []ExpenseView `json:"list"`
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 获取当前用户的消费记录，支持按类别过滤和按日期/金额倒序排序。每次请求从持久层重新加载权威数据。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "类别过滤，all 或具体类别" default(all)
// @Param sort query string false "排序方式：date（默认）/amount" Enums(date,amount)
// @Success 200 {object} Response{data=ExpenseListData} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	filter := c.DefaultQuery("category", ledger.FilterAll)
	sortKey := ledger.SortByDate
	if c.Query("sort") == string(ledger.SortByAmount) {
		sortKey = ledger.SortByAmount
	}

	l := h.ledgers.ForUser(userID)
	if err := l.Load(c.Request.Context()); err != nil {
		ledgerError(c, err)
		return
	}

	records := l.View(filter, sortKey)
	Success(c, ExpenseListData{
		Total:    len(records),
		Category: filter,
		Sort:     string(sortKey),
		List:     toView(records),
	})
}

// CategoryStatView 单个类别统计
type CategoryStatView struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// SummaryData 消费汇总数据
type SummaryData struct {
	TotalAmount   float64            `json:"total_amount"`
	TotalCount    int                `json:"total_count"`
	CategoryStats []CategoryStatView `json:"category_stats"`
}

// Summary 获取消费汇总
// @Summary 获取消费汇总
// @Description 返回当前用户的运行总额与分类统计（仅包含出现过的类别，按总额倒序）。总额为全部已加载记录之和，不按日历月截断。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SummaryData} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	l := h.ledgers.ForUser(userID)
	if !l.Loaded() {
		if err := l.Load(c.Request.Context()); err != nil {
			ledgerError(c, err)
			return
		}
	}

	breakdown := l.CategoryBreakdown()
	total := l.TotalAmount()

	stats := make([]CategoryStatView, 0, len(breakdown))
	for category, stat := range breakdown {
		view := CategoryStatView{
			Category: category,
			Label:    models.CategoryLabel(category),
			Count:    stat.Count,
			Total:    stat.Total,
		}
		if total > 0 {
			view.Percentage = stat.Total / total * 100
		}
		stats = append(stats, view)
	}
	// 按总额倒序，总额相同按类别名稳定排序
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Category < stats[j].Category
	})

	Success(c, SummaryData{
		TotalAmount:   total,
		TotalCount:    l.Size(),
		CategoryStats: stats,
	})
}

// ClearCache 清除会话缓存
// @Summary 清除会话缓存
// @Description 清除当前会话缓存的总额（“清除数据”操作）。不删除任何已持久化的消费记录。
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "清除成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/clear-cache [post]
func (h *ExpenseHandler) ClearCache(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	h.ledgers.ClearCachedTotal(userID)
	SuccessWithMessage(c, "会话缓存已清除", nil)
}

// GetCategories 获取消费类别列表
// @Summary 获取消费类别列表
// @Description 获取所有可用的消费类别（含展示名与颜色），按排序字段升序排列
// @Tags 字典
// @Accept json
// @Produce json
// @Success 200 {object} Response{data=[]models.ExpenseCategory} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	var list []models.ExpenseCategory
	if err := database.DB.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// PaymentModeView 支付方式选项
type PaymentModeView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// GetPaymentModes 获取支付方式列表
// @Summary 获取支付方式列表
// @Description 获取所有可用的支付方式（固定枚举）
// @Tags 字典
// @Accept json
// @Produce json
// @Success 200 {object} Response{data=[]PaymentModeView} "获取成功"
// @Router /api/v1/payment-modes [get]
func (h *ExpenseHandler) GetPaymentModes(c *gin.Context) {
	modes := models.GetPaymentModes()
	list := make([]PaymentModeView, 0, len(modes))
	for _, m := range modes {
		list = append(list, PaymentModeView{Name: m, Label: models.PaymentModeLabel(m)})
	}
	Success(c, list)
}
