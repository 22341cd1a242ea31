package domain

import (
	"errors"
	"math"
	"testing"
)

func validCreatorRequest() CreatorOrderNotificationRequest {
	return CreatorOrderNotificationRequest{
		OrderID:      "order-1",
		CreatorEmail: "creator@example.com",
		CreatorName:  "דנה",
		FanName:      "יוסי",
		OrderType:    "birthday",
		OrderPrice:   100,
		PriceSet:     true,
	}
}

func TestCreatorOrderNotificationRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*CreatorOrderNotificationRequest)
		wantErr bool
	}{
		{name: "valid request", mutate: func(r *CreatorOrderNotificationRequest) {}},
		{name: "zero price is allowed", mutate: func(r *CreatorOrderNotificationRequest) { r.OrderPrice = 0 }},
		{name: "missing order id", mutate: func(r *CreatorOrderNotificationRequest) { r.OrderID = "" }, wantErr: true},
		{name: "missing creator email", mutate: func(r *CreatorOrderNotificationRequest) { r.CreatorEmail = " " }, wantErr: true},
		{name: "missing fan name", mutate: func(r *CreatorOrderNotificationRequest) { r.FanName = "" }, wantErr: true},
		{name: "missing order type", mutate: func(r *CreatorOrderNotificationRequest) { r.OrderType = "" }, wantErr: true},
		{name: "price not provided", mutate: func(r *CreatorOrderNotificationRequest) { r.PriceSet = false }, wantErr: true},
		{name: "negative price", mutate: func(r *CreatorOrderNotificationRequest) { r.OrderPrice = -5 }, wantErr: true},
		{name: "nan price", mutate: func(r *CreatorOrderNotificationRequest) { r.OrderPrice = math.NaN() }, wantErr: true},
		{name: "infinite price", mutate: func(r *CreatorOrderNotificationRequest) { r.OrderPrice = math.Inf(1) }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validCreatorRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("Validate() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestFanOrderConfirmationRequestValidate(t *testing.T) {
	t.Parallel()

	valid := FanOrderConfirmationRequest{
		OrderID:     "order-2",
		FanEmail:    "fan@example.com",
		FanName:     "יוסי",
		CreatorName: "דנה",
		OrderType:   "motivation",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}

	// estimatedDelivery stays optional.
	valid.EstimatedDelivery = ""
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error without estimatedDelivery = %v", err)
	}

	missing := valid
	missing.FanEmail = ""
	if err := missing.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestTemplatedEmailRequestValidate(t *testing.T) {
	t.Parallel()

	valid := TemplatedEmailRequest{To: "user@example.com", Subject: "שלום", Template: "welcome"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}

	for _, mutate := range []func(*TemplatedEmailRequest){
		func(r *TemplatedEmailRequest) { r.To = "" },
		func(r *TemplatedEmailRequest) { r.Subject = "" },
		func(r *TemplatedEmailRequest) { r.Template = "" },
	} {
		req := valid
		mutate(&req)
		if err := req.Validate(); !errors.Is(err, ErrValidation) {
			t.Fatalf("Validate() error = %v, want ErrValidation", err)
		}
	}
}
