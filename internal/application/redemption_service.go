package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	repo "github.com/rewearhq/rewear-backend/internal/domain/repository"
	"github.com/rewearhq/rewear-backend/pkg/mailer"
)

// RedemptionReceipt reports the outcome of a successful redemption.
type RedemptionReceipt struct {
	ItemID         string `json:"item_id"`
	ItemTitle      string `json:"item_title"`
	ItemStatus     string `json:"item_status"`
	PointsDeducted int64  `json:"points_deducted"`
	BuyerID        string `json:"buyer_id"`
	BuyerBalance   int64  `json:"buyer_points_remaining"`
	SellerID       string `json:"seller_id"`
	SellerBalance  int64  `json:"seller_points_total"`
}

// RedemptionService is the redemption engine. It validates eligibility,
// moves the item's price from buyer to seller and flips the item to
// redeemed, all inside one unit of work. The item's available -> redeemed
// transition is a conditional write, so at most one redemption ever
// succeeds per item no matter how many run concurrently.
type RedemptionService struct {
	UoW    repo.UnitOfWork
	Pub    Publisher
	Logger *logrus.Logger
}

func NewRedemptionService(uow repo.UnitOfWork, pub Publisher, logger *logrus.Logger) *RedemptionService {
	return &RedemptionService{UoW: uow, Pub: pub, Logger: logger}
}

// Redeem transfers item.Price points from the buyer to the item's owner and
// marks the item redeemed. Preconditions are checked in order, each with its
// own error: buyer exists, item exists, item approved, item available, no
// self-redemption, sufficient balance. On any failure nothing is committed.
func (s *RedemptionService) Redeem(ctx context.Context, buyerID, itemID string) (*RedemptionReceipt, error) {
	var (
		receipt *RedemptionReceipt
		seller  *entity.User
	)

	err := s.UoW.WithinTx(ctx, func(r repo.Repositories) error {
		buyer, err := r.Users().GetByID(ctx, buyerID)
		if err != nil {
			return err
		}
		item, err := r.Items().GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Approved {
			return errs.ErrItemNotApproved
		}
		if item.Status != entity.StatusAvailable {
			return errs.ErrItemNotAvailable
		}
		if item.OwnerID == buyer.ID {
			return errs.ErrSelfRedemption
		}
		if !buyer.CanAfford(item.Price) {
			return errs.ErrInsufficientPoints
		}

		// Seller is loaded fresh inside the transaction, never from an
		// earlier read.
		seller, err = r.Users().GetByID(ctx, item.OwnerID)
		if err != nil {
			return err
		}

		// Serialization point: a concurrent redeemer that lost the race
		// sees zero rows updated here and the whole unit rolls back.
		ok, err := r.Items().MarkRedeemed(ctx, item.ID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.ErrItemNotAvailable
		}

		buyerBalance, err := r.Users().AdjustPoints(ctx, buyer.ID, -item.Price)
		if err != nil {
			return err
		}
		sellerBalance, err := r.Users().AdjustPoints(ctx, seller.ID, item.Price)
		if err != nil {
			return err
		}

		receipt = &RedemptionReceipt{
			ItemID:         item.ID,
			ItemTitle:      item.Title,
			ItemStatus:     entity.StatusRedeemed,
			PointsDeducted: item.Price,
			BuyerID:        buyer.ID,
			BuyerBalance:   buyerBalance,
			SellerID:       seller.ID,
			SellerBalance:  sellerBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"item_id":   receipt.ItemID,
		"buyer_id":  receipt.BuyerID,
		"seller_id": receipt.SellerID,
		"points":    receipt.PointsDeducted,
	}).Info("item redeemed")

	// Post-commit, best-effort. A mail outage never unwinds the transfer.
	go s.notifySeller(seller.Email, receipt)

	return receipt, nil
}

func (s *RedemptionService) notifySeller(sellerEmail string, receipt *RedemptionReceipt) {
	if s.Pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	job := mailer.EmailJob{
		To:       sellerEmail,
		Template: mailer.TemplateItemRedeemed,
		Data: map[string]any{
			"ItemTitle": receipt.ItemTitle,
			"Points":    receipt.PointsDeducted,
			"Balance":   receipt.SellerBalance,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"item_id":   receipt.ItemID,
			"seller_id": receipt.SellerID,
		}).Warn("seller notification dropped")
	}
}
