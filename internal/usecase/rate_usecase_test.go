package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
	"github.com/iho/dairyledger/internal/usecase/mocks"
)

func TestRateUseCase_SetRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := mocks.NewMockRateRepository(ctrl)
	customers := mocks.NewMockCustomerRepository(ctrl)

	customers.EXPECT().GetByID(gomock.Any(), "CUST001").Return(&domain.Customer{ID: "CUST001"}, nil)
	rates.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewRateUseCase(rates, customers, fixedNow)
	got, err := uc.SetRate(context.Background(), usecase.SetRateInput{CustomerID: "CUST001", Rate: dec("85")})

	require.NoError(t, err)
	assert.Equal(t, "CUST001", got.CustomerID)
	assert.True(t, got.Rate.Equal(dec("85")))
	assert.Equal(t, date("2026-01-16"), got.EffectiveDate)
}

func TestRateUseCase_SetRateRejectsNonPositive(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewRateUseCase(mocks.NewMockRateRepository(ctrl), mocks.NewMockCustomerRepository(ctrl), fixedNow)

	_, err := uc.SetRate(context.Background(), usecase.SetRateInput{CustomerID: "CUST001", Rate: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)
}

func TestRateUseCase_CurrentRate(t *testing.T) {
	records := []domain.RateRecord{
		{CustomerID: "CUST001", Rate: dec("10"), EffectiveDate: date("2025-01-01")},
		{CustomerID: "CUST001", Rate: dec("12"), EffectiveDate: date("2025-06-01")},
	}

	tests := []struct {
		name    string
		on      domain.Date
		want    string
		wantErr error
	}{
		{"after second record", date("2025-07-01"), "12", nil},
		{"between records", date("2025-03-01"), "10", nil},
		{"defaults to today", domain.Date{}, "12", nil},
		{"before any record", date("2024-12-31"), "", domain.ErrRateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rates := mocks.NewMockRateRepository(ctrl)
			rates.EXPECT().List(gomock.Any(), "CUST001").Return(records, nil)

			uc := usecase.NewRateUseCase(rates, mocks.NewMockCustomerRepository(ctrl), fixedNow)
			got, err := uc.CurrentRate(context.Background(), "CUST001", tt.on)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}
