package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vogiaan1904/ticketbottle-counters/config"
	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
)

const receiptIssuer = "ticketbottle-counters"

type receiptClaims struct {
	Section  string `json:"section"`
	Sequence int    `json:"seq"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Receipts signs and verifies the tokens handed to customers with their
// ticket, which later let them look the ticket up.
type Receipts struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewReceipts(cfg config.ReceiptConfig) *Receipts {
	return &Receipts{
		secret: []byte(cfg.Secret),
		expiry: cfg.Expiry,
		now:    time.Now,
	}
}

func (r *Receipts) Issue(t models.Ticket) (string, error) {
	now := r.now()
	claims := receiptClaims{
		Section:  t.Section,
		Sequence: t.Sequence,
		Name:     t.HolderName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    receiptIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign receipt: %w", err)
	}

	return signed, nil
}

func (r *Receipts) Parse(receipt string) (*receiptClaims, error) {
	if receipt == "" {
		return nil, qErrors.NewValidationError("receipt", "is required")
	}

	claims := &receiptClaims{}
	_, err := jwt.ParseWithClaims(receipt, claims, func(token *jwt.Token) (any, error) {
		return r.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(receiptIssuer),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		return nil, qErrors.NewValidationError("receipt", "invalid or expired")
	}

	return claims, nil
}
