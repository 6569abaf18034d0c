package service

import (
	"context"
	"errors"
	"fmt"

	"finpal/database"
	"finpal/ledger"
	"finpal/models"

	"gorm.io/gorm"
)

// ExpenseStore 基于 GORM 的消费记录持久层，实现 ledger.Store
// 每次调用都校验用户仍然存在且状态正常，否则视为会话无效
type ExpenseStore struct{}

// NewExpenseStore 创建消费记录持久层
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{}
}

// checkSession 校验用户会话有效性
func (s *ExpenseStore) checkSession(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ledger.ErrUnauthenticated
	}
	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.ErrUnauthenticated
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if user.Status != models.UserStatusActive {
		return ledger.ErrUnauthenticated
	}
	return nil
}

// FetchExpenses 拉取用户全部消费记录（权威数据）
func (s *ExpenseStore) FetchExpenses(ctx context.Context, userID uint) ([]models.Expense, error) {
	if err := s.checkSession(ctx, userID); err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("查询消费记录失败: %w", err)
	}
	return expenses, nil
}

// SubmitExpense 写入一条已通过校验的消费记录，返回带服务端 ID 的记录
func (s *ExpenseStore) SubmitExpense(ctx context.Context, userID uint, draft ledger.ValidatedDraft) (models.Expense, error) {
	if err := s.checkSession(ctx, userID); err != nil {
		return models.Expense{}, err
	}

	expense := models.Expense{
		UserID:      userID,
		Category:    draft.Category,
		Amount:      draft.Amount,
		PaymentMode: draft.PaymentMode,
		Description: draft.Description,
		ExpenseTime: draft.OccurredAt,
	}
	if err := database.DB.WithContext(ctx).Create(&expense).Error; err != nil {
		return models.Expense{}, fmt.Errorf("创建消费记录失败: %w", err)
	}
	return expense, nil
}
