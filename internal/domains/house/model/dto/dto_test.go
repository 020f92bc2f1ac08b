package dto_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ihome/internal/domains/house/model/dto"
	"ihome/shared/failure"
	"ihome/shared/validator"
)

func createRequest(price, deposit float64) dto.CreateHouseRequest {
	return dto.CreateHouseRequest{
		Title:     "flat",
		Price:     price,
		AreaID:    1,
		Address:   "1 Chaoyang Rd",
		RoomCount: 2,
		Acreage:   80,
		Unit:      "2br",
		Capacity:  3,
		Beds:      "2x double",
		Deposit:   deposit,
	}
}

func TestCreateHouseRequest_PriceBounds(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		deposit float64
		wantErr bool
	}{
		{name: "free", price: 0, deposit: 0},
		{name: "upper bound", price: 1000000, deposit: 1000000},
		{name: "price above bound", price: 1000000.01, deposit: 0, wantErr: true},
		{name: "deposit above bound", price: 100, deposit: 5e12, wantErr: true},
		{name: "negative price", price: -1, deposit: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest(tt.price, tt.deposit)

			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCreateHouseRequest_ToModel(t *testing.T) {
	req := createRequest(1000000, 99.99)

	house := req.ToModel("owner-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 100000000, house.Price)
	assert.Equal(t, 9999, house.Deposit)
	assert.Equal(t, "owner-1", house.UserID)
	assert.NotEmpty(t, house.ID)
}
