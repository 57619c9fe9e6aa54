package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/modules/ledger/usecase"
	"github.com/samber/lo"
)

type createListingRequest struct {
	NFTID          string     `params:"id"`
	SellerAddress  string     `json:"sellerAddress"`
	SellerUsername string     `json:"sellerUsername"`
	Price          string     `json:"price"`
	Quantity       uint64     `json:"quantity"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

func (r *createListingRequest) Validate() error {
	var errList []error
	if r.NFTID == "" {
		errList = append(errList, errors.New("'id' is required"))
	}
	if r.SellerAddress == "" {
		errList = append(errList, errors.New("'sellerAddress' is required"))
	}
	if r.Price == "" {
		errList = append(errList, errors.New("'price' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type listingResult struct {
	ID             string  `json:"id"`
	NFTID          string  `json:"nftId"`
	SellerAddress  string  `json:"sellerAddress"`
	SellerUsername string  `json:"sellerUsername,omitempty"`
	Price          string  `json:"price"`
	Quantity       uint64  `json:"quantity"`
	Status         string  `json:"status"`
	ListedAt       int64   `json:"listedAt"` // unix timestamp
	ExpiresAt      *int64  `json:"expiresAt"`
	SoldAt         *int64  `json:"soldAt"`
	Buyer          *string `json:"buyer,omitempty"`
}

func mapListingToResult(listing *ledger.Listing, now time.Time) listingResult {
	result := listingResult{
		ID:             listing.ID,
		NFTID:          listing.NFTID,
		SellerAddress:  listing.Seller.Address,
		SellerUsername: listing.Seller.Username,
		Price:          listing.Price.String(),
		Quantity:       listing.Quantity,
		Status:         listing.StatusAt(now).String(),
		ListedAt:       listing.ListedAt.Unix(),
	}
	if listing.ExpiresAt != nil {
		result.ExpiresAt = lo.ToPtr(listing.ExpiresAt.Unix())
	}
	if listing.SoldAt != nil {
		result.SoldAt = lo.ToPtr(listing.SoldAt.Unix())
	}
	if listing.Buyer != "" {
		result.Buyer = lo.ToPtr(listing.Buyer)
	}
	return result
}

type createListingResponse = HttpResponse[listingResult]

func (h *HttpHandler) CreateListing(ctx *fiber.Ctx) (err error) {
	var req createListingRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	price, err := parseAmount("price", req.Price)
	if err != nil {
		return errors.WithStack(err)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	now := time.Now().UTC()
	listing, err := h.usecase.CreateListing(ctx.UserContext(), usecase.CreateListingParams{
		NFTID: req.NFTID,
		Seller: ledger.Seller{
			Address:  req.SellerAddress,
			Username: req.SellerUsername,
		},
		Price:     price,
		Quantity:  quantity,
		ExpiresAt: req.ExpiresAt,
	}, now)
	if err != nil {
		return errors.Wrap(err, "error during CreateListing")
	}

	resp := createListingResponse{
		Result: lo.ToPtr(mapListingToResult(listing, now)),
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(resp))
}
