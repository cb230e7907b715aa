package payment

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Request describes a payment initiation for one enrollment.
type Request struct {
	OrderID     string
	Amount      float64
	PayerID     string
	PayerEmail  string
	Description string
}

// Session is the gateway's answer: the page the payer must be
// redirected to, plus the gateway token for later reconciliation.
type Session struct {
	Token       string
	RedirectURL string
}

// Config carries the Snap gateway credentials.
type Config struct {
	ServerKey  string
	Production bool
}

// SnapGateway initiates payments through the Midtrans Snap API.
type SnapGateway struct {
	client snap.Client
}

// NewSnapGateway builds a gateway against sandbox or production.
func NewSnapGateway(cfg Config) *SnapGateway {
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	g := &SnapGateway{}
	g.client.New(cfg.ServerKey, env)
	return g
}

// Initiate creates a Snap transaction and returns the hosted payment
// page. A non-positive amount is rejected before any gateway call.
func (g *SnapGateway) Initiate(ctx context.Context, req Request) (*Session, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %v", req.Amount)
	}
	if req.OrderID == "" {
		return nil, fmt.Errorf("payment order id is required")
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: int64(req.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.PayerID,
			Email: req.PayerEmail,
		},
	}
	if req.Description != "" {
		snapReq.Items = &[]midtrans.ItemDetails{
			{
				ID:    req.OrderID,
				Price: int64(req.Amount),
				Qty:   1,
				Name:  req.Description,
			},
		}
	}

	resp, err := g.client.CreateTransaction(snapReq)
	if err != nil {
		return nil, fmt.Errorf("create snap transaction: %w", err)
	}
	return &Session{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}
