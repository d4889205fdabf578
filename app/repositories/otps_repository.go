package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type OTPRepositoryImpl interface {
	Create(ctx context.Context, userID, code string) (*models.OTP, error)
	FindLatestUnused(ctx context.Context, userID string) (*models.OTP, error)
	MarkUsed(ctx context.Context, otpID string) error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepositoryImpl {
	return &otpRepository{db}
}

func (r *otpRepository) Create(ctx context.Context, userID, code string) (*models.OTP, error) {
	otp := &models.OTP{
		ID:     uuid.New().String(),
		UserID: userID,
		Code:   code,
	}
	if err := r.db.WithContext(ctx).Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

// FindLatestUnused returns the authoritative code for a verification
// attempt. Ordering falls back to id so two codes created within the same
// clock tick still resolve deterministically.
func (r *otpRepository) FindLatestUnused(ctx context.Context, userID string) (*models.OTP, error) {
	var otp models.OTP
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_used = ?", userID, false).
		Order("created_at DESC, id DESC").
		First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkUsed(ctx context.Context, otpID string) error {
	return r.db.WithContext(ctx).Model(&models.OTP{}).Where("id = ?", otpID).Update("is_used", true).Error
}
