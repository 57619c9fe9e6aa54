package postgres

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
)

func uint128FromNumeric(src pgtype.Numeric) (*uint128.Uint128, error) {
	if !src.Valid {
		return nil, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &result, nil
}

func numericFromUint128(src *uint128.Uint128) (pgtype.Numeric, error) {
	if src == nil {
		return pgtype.Numeric{}, nil
	}
	bytes := []byte(src.String())
	var result pgtype.Numeric
	err := result.UnmarshalJSON(bytes)
	if err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func timestamptzFromTimePtr(src *time.Time) pgtype.Timestamptz {
	if src == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: src.UTC(), Valid: true}
}

func timePtrFromTimestamptz(src pgtype.Timestamptz) *time.Time {
	if !src.Valid {
		return nil
	}
	t := src.Time.UTC()
	return &t
}

type mintWindowModel struct {
	NFTID             string
	MintedSupply      int64
	TriggerSupply     int64
	CountdownDuration int64
	ExplicitDeadline  pgtype.Timestamptz
	ArmedAt           pgtype.Timestamptz
	CustomPrice       pgtype.Numeric
	CreatedAt         time.Time
}

func mapMintWindowTypeToModel(src *ledger.MintWindow) (mintWindowModel, error) {
	customPrice, err := numericFromUint128(src.CustomPrice)
	if err != nil {
		return mintWindowModel{}, errors.Wrap(err, "invalid custom price")
	}
	return mintWindowModel{
		NFTID:             src.NFTID,
		MintedSupply:      int64(src.MintedSupply),
		TriggerSupply:     int64(src.TriggerSupply),
		CountdownDuration: int64(src.CountdownDuration),
		ExplicitDeadline:  timestamptzFromTimePtr(src.ExplicitDeadline),
		ArmedAt:           timestamptzFromTimePtr(src.ArmedAt),
		CustomPrice:       customPrice,
		CreatedAt:         src.CreatedAt.UTC(),
	}, nil
}

func mapMintWindowModelToType(src mintWindowModel) (*ledger.MintWindow, error) {
	customPrice, err := uint128FromNumeric(src.CustomPrice)
	if err != nil {
		return nil, errors.Wrap(err, "invalid custom price")
	}
	return &ledger.MintWindow{
		NFTID:             src.NFTID,
		MintedSupply:      uint64(src.MintedSupply),
		TriggerSupply:     uint64(src.TriggerSupply),
		CountdownDuration: time.Duration(src.CountdownDuration),
		ExplicitDeadline:  timePtrFromTimestamptz(src.ExplicitDeadline),
		ArmedAt:           timePtrFromTimestamptz(src.ArmedAt),
		CustomPrice:       customPrice,
		CreatedAt:         src.CreatedAt.UTC(),
	}, nil
}

type listingModel struct {
	ID             string
	NFTID          string
	SellerAddress  string
	SellerUsername string
	Price          pgtype.Numeric
	Quantity       int64
	Status         string
	ListedAt       time.Time
	ExpiresAt      pgtype.Timestamptz
	SoldAt         pgtype.Timestamptz
	Buyer          string
	Position       int64
}

func mapListingTypeToModel(src *ledger.Listing, position int64) (listingModel, error) {
	price, err := numericFromUint128(&src.Price)
	if err != nil {
		return listingModel{}, errors.Wrap(err, "invalid price")
	}
	return listingModel{
		ID:             src.ID,
		NFTID:          src.NFTID,
		SellerAddress:  src.Seller.Address,
		SellerUsername: src.Seller.Username,
		Price:          price,
		Quantity:       int64(src.Quantity),
		Status:         src.Status.String(),
		ListedAt:       src.ListedAt.UTC(),
		ExpiresAt:      timestamptzFromTimePtr(src.ExpiresAt),
		SoldAt:         timestamptzFromTimePtr(src.SoldAt),
		Buyer:          src.Buyer,
		Position:       position,
	}, nil
}

func mapListingModelToType(src listingModel) (*ledger.Listing, error) {
	price, err := uint128FromNumeric(src.Price)
	if err != nil {
		return nil, errors.Wrap(err, "invalid price")
	}
	if price == nil {
		return nil, errors.Errorf("listing %q has no price", src.ID)
	}
	return &ledger.Listing{
		ID:    src.ID,
		NFTID: src.NFTID,
		Seller: ledger.Seller{
			Address:  src.SellerAddress,
			Username: src.SellerUsername,
		},
		Price:     *price,
		Quantity:  uint64(src.Quantity),
		Status:    ledger.ListingStatus(src.Status),
		ListedAt:  src.ListedAt.UTC(),
		ExpiresAt: timePtrFromTimestamptz(src.ExpiresAt),
		SoldAt:    timePtrFromTimestamptz(src.SoldAt),
		Buyer:     src.Buyer,
	}, nil
}
