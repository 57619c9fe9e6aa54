package config

import (
	"time"

	"github.com/openmint/platform-ledger/internal/postgres"
)

type Config struct {
	// Checkpointing is where durable ledger state (mint windows, listings,
	// bonus claims) is persisted between restarts. e.g. `postgres` | `none`
	Checkpointing      string          `mapstructure:"checkpointing"`
	Postgres           postgres.Config `mapstructure:"postgres"`
	CheckpointInterval time.Duration   `mapstructure:"checkpoint_interval"`

	// DefaultMintPrice is the platform-wide default mint price in minor units.
	DefaultMintPrice  string        `mapstructure:"default_mint_price"`
	TriggerSupply     uint64        `mapstructure:"trigger_supply"`
	CountdownDuration time.Duration `mapstructure:"countdown_duration"`

	EarlyBirdCap  uint64        `mapstructure:"early_bird_cap"`
	WheelCooldown time.Duration `mapstructure:"wheel_cooldown"`
	// WheelRewards are the token amounts (minor units) on the wheel.
	WheelRewards []string `mapstructure:"wheel_rewards"`
}
