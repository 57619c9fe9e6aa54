package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/openmint/platform-ledger/common/errs"
	"github.com/openmint/platform-ledger/internal/postgres"
	"github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"golang.org/x/sync/errgroup"
)

const (
	programKindCapped   = "capped"
	programKindCooldown = "cooldown"
)

// Repository persists ledger checkpoints. A checkpoint is stored as one
// atomic replacement of all checkpoint tables.
type Repository struct {
	db postgres.DB
}

var _ datagateway.CheckpointDataGateway = (*Repository)(nil)

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (repo *Repository) SaveCheckpoint(ctx context.Context, checkpoint *datagateway.Checkpoint) error {
	tx, err := repo.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "can't begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE ledger_mint_windows, ledger_listings, ledger_bonus_programs, ledger_bonus_claims`); err != nil {
		return errors.Wrap(err, "can't truncate checkpoint tables")
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO ledger_checkpoints (id, taken_at) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET taken_at = EXCLUDED.taken_at
	`, checkpoint.TakenAt.UTC()); err != nil {
		return errors.Wrap(err, "can't upsert checkpoint row")
	}

	batch := &pgx.Batch{}
	for _, window := range checkpoint.MintWindows {
		model, err := mapMintWindowTypeToModel(window)
		if err != nil {
			return errors.Wrapf(err, "can't map mint window %q", window.NFTID)
		}
		batch.Queue(`
			INSERT INTO ledger_mint_windows (nft_id, minted_supply, trigger_supply, countdown_duration, explicit_deadline, armed_at, custom_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, model.NFTID, model.MintedSupply, model.TriggerSupply, model.CountdownDuration, model.ExplicitDeadline, model.ArmedAt, model.CustomPrice, model.CreatedAt)
	}
	for i, listing := range checkpoint.Listings {
		model, err := mapListingTypeToModel(listing, int64(i))
		if err != nil {
			return errors.Wrapf(err, "can't map listing %q", listing.ID)
		}
		batch.Queue(`
			INSERT INTO ledger_listings (id, nft_id, seller_address, seller_username, price, quantity, status, listed_at, expires_at, sold_at, buyer, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, model.ID, model.NFTID, model.SellerAddress, model.SellerUsername, model.Price, model.Quantity, model.Status, model.ListedAt, model.ExpiresAt, model.SoldAt, model.Buyer, model.Position)
	}
	for _, program := range checkpoint.CappedPrograms {
		batch.Queue(`
			INSERT INTO ledger_bonus_programs (program_id, kind, cap, issued, cooldown)
			VALUES ($1, $2, $3, $4, 0)
		`, program.ProgramID, programKindCapped, int64(program.Cap), int64(program.Issued))
		for _, claim := range program.Claims {
			batch.Queue(`
				INSERT INTO ledger_bonus_claims (program_id, address, claimed_at)
				VALUES ($1, $2, $3)
			`, program.ProgramID, claim.Address, claim.ClaimedAt.UTC())
		}
	}
	for _, program := range checkpoint.CooldownPrograms {
		batch.Queue(`
			INSERT INTO ledger_bonus_programs (program_id, kind, cap, issued, cooldown)
			VALUES ($1, $2, 0, 0, $3)
		`, program.ProgramID, programKindCooldown, int64(program.Cooldown))
		for address, lastClaimAt := range program.LastClaimAt {
			batch.Queue(`
				INSERT INTO ledger_bonus_claims (program_id, address, claimed_at)
				VALUES ($1, $2, $3)
			`, program.ProgramID, address, lastClaimAt.UTC())
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrap(err, "can't insert checkpoint rows")
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "can't commit transaction")
	}
	return nil
}

func (repo *Repository) LoadCheckpoint(ctx context.Context) (*datagateway.Checkpoint, error) {
	var takenAt time.Time
	err := repo.db.QueryRow(ctx, `SELECT taken_at FROM ledger_checkpoints WHERE id = 1`).Scan(&takenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrap(errs.NotFound, "no checkpoint saved")
		}
		return nil, errors.Wrap(err, "can't query checkpoint row")
	}

	checkpoint := &datagateway.Checkpoint{TakenAt: takenAt.UTC()}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		windows, err := repo.loadMintWindows(egCtx)
		if err != nil {
			return errors.WithStack(err)
		}
		checkpoint.MintWindows = windows
		return nil
	})
	eg.Go(func() error {
		listings, err := repo.loadListings(egCtx)
		if err != nil {
			return errors.WithStack(err)
		}
		checkpoint.Listings = listings
		return nil
	})
	eg.Go(func() error {
		capped, cooldown, err := repo.loadBonusPrograms(egCtx)
		if err != nil {
			return errors.WithStack(err)
		}
		checkpoint.CappedPrograms = capped
		checkpoint.CooldownPrograms = cooldown
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "can't load checkpoint")
	}
	return checkpoint, nil
}

func (repo *Repository) loadMintWindows(ctx context.Context) ([]*ledger.MintWindow, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT nft_id, minted_supply, trigger_supply, countdown_duration, explicit_deadline, armed_at, custom_price, created_at
		FROM ledger_mint_windows ORDER BY nft_id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "can't query mint windows")
	}
	defer rows.Close()

	var windows []*ledger.MintWindow
	for rows.Next() {
		var model mintWindowModel
		if err := rows.Scan(&model.NFTID, &model.MintedSupply, &model.TriggerSupply, &model.CountdownDuration, &model.ExplicitDeadline, &model.ArmedAt, &model.CustomPrice, &model.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "can't scan mint window")
		}
		window, err := mapMintWindowModelToType(model)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		windows = append(windows, window)
	}
	return windows, errors.Wrap(rows.Err(), "can't iterate mint windows")
}

func (repo *Repository) loadListings(ctx context.Context) ([]*ledger.Listing, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT id, nft_id, seller_address, seller_username, price, quantity, status, listed_at, expires_at, sold_at, buyer, position
		FROM ledger_listings ORDER BY nft_id, position
	`)
	if err != nil {
		return nil, errors.Wrap(err, "can't query listings")
	}
	defer rows.Close()

	var listings []*ledger.Listing
	for rows.Next() {
		var model listingModel
		if err := rows.Scan(&model.ID, &model.NFTID, &model.SellerAddress, &model.SellerUsername, &model.Price, &model.Quantity, &model.Status, &model.ListedAt, &model.ExpiresAt, &model.SoldAt, &model.Buyer, &model.Position); err != nil {
			return nil, errors.Wrap(err, "can't scan listing")
		}
		listing, err := mapListingModelToType(model)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		listings = append(listings, listing)
	}
	return listings, errors.Wrap(rows.Err(), "can't iterate listings")
}

func (repo *Repository) loadBonusPrograms(ctx context.Context) ([]*ledger.CappedProgram, []*ledger.CooldownProgram, error) {
	rows, err := repo.db.Query(ctx, `SELECT program_id, kind, cap, issued, cooldown FROM ledger_bonus_programs ORDER BY program_id`)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't query bonus programs")
	}
	defer rows.Close()

	var capped []*ledger.CappedProgram
	var cooldown []*ledger.CooldownProgram
	for rows.Next() {
		var programID, kind string
		var capacity, issued, cooldownNanos int64
		if err := rows.Scan(&programID, &kind, &capacity, &issued, &cooldownNanos); err != nil {
			return nil, nil, errors.Wrap(err, "can't scan bonus program")
		}
		switch kind {
		case programKindCapped:
			program := ledger.NewCappedProgram(programID, uint64(capacity))
			program.Issued = uint64(issued)
			capped = append(capped, program)
		case programKindCooldown:
			cooldown = append(cooldown, ledger.NewCooldownProgram(programID, time.Duration(cooldownNanos)))
		default:
			return nil, nil, errors.Errorf("unknown bonus program kind %q", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "can't iterate bonus programs")
	}
	rows.Close()

	cappedByID := make(map[string]*ledger.CappedProgram, len(capped))
	for _, program := range capped {
		cappedByID[program.ProgramID] = program
	}
	cooldownByID := make(map[string]*ledger.CooldownProgram, len(cooldown))
	for _, program := range cooldown {
		cooldownByID[program.ProgramID] = program
	}

	claimRows, err := repo.db.Query(ctx, `SELECT program_id, address, claimed_at FROM ledger_bonus_claims ORDER BY program_id, address`)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't query bonus claims")
	}
	defer claimRows.Close()
	for claimRows.Next() {
		var programID, address string
		var claimedAt time.Time
		if err := claimRows.Scan(&programID, &address, &claimedAt); err != nil {
			return nil, nil, errors.Wrap(err, "can't scan bonus claim")
		}
		if program, ok := cappedByID[programID]; ok {
			program.Claims[address] = &ledger.BonusClaim{Address: address, ClaimedAt: claimedAt.UTC()}
			continue
		}
		if program, ok := cooldownByID[programID]; ok {
			program.LastClaimAt[address] = claimedAt.UTC()
			continue
		}
		return nil, nil, errors.Errorf("bonus claim for unknown program %q", programID)
	}
	return capped, cooldown, errors.Wrap(claimRows.Err(), "can't iterate bonus claims")
}
