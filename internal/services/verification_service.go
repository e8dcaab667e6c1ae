package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
)

const (
	minCode = 1000
	maxCode = 9999
)

// VerificationService issues and consumes one-time verification codes
type VerificationService struct {
	codes repositories.VerificationCodeRepository
	ttl   time.Duration
	now   func() time.Time
}

func NewVerificationService(codes repositories.VerificationCodeRepository, ttl time.Duration, now func() time.Time) *VerificationService {
	return &VerificationService{codes: codes, ttl: ttl, now: now}
}

// RequestCode stores a fresh 4-digit code and returns it to the caller.
// The code is handed back directly; there is no out-of-band delivery.
func (s *VerificationService) RequestCode(ctx context.Context) (*models.CodeData, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return nil, err
	}
	record := &models.VerificationCode{
		Code:      strconv.FormatInt(n.Int64()+minCode, 10),
		CreatedAt: s.now(),
	}
	if err := s.codes.CreateCode(ctx, record); err != nil {
		return nil, err
	}
	return &models.CodeData{ID: record.ID.Hex(), Code: record.Code}, nil
}

// CheckCode consumes the code identified by id. It succeeds at most once per code.
func (s *VerificationService) CheckCode(ctx context.Context, id, code string) error {
	oid, err := parseID(id, ErrCodeInvalid)
	if err != nil {
		return err
	}
	ok, err := s.codes.ConsumeCode(ctx, oid, code, s.now().Add(-s.ttl))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeInvalid
	}
	return nil
}
