package usecase

import (
	"time"

	"github.com/openmint/platform-ledger/modules/ledger/datagateway"
	"github.com/openmint/platform-ledger/modules/ledger/ledger"
	"github.com/openmint/platform-ledger/pkg/reportingclient"
)

type Usecase struct {
	ledgerDg         datagateway.LedgerDataGateway
	checkpointDg     datagateway.CheckpointDataGateway
	reportingClient  *reportingclient.ReportingClient
	defaultMintPrice ledger.Amount
	triggerSupply    uint64
	countdown        time.Duration
	wheelRewards     []ledger.Amount
}

type Config struct {
	DefaultMintPrice  ledger.Amount
	TriggerSupply     uint64
	CountdownDuration time.Duration
	WheelRewards      []ledger.Amount
}

// New creates the ledger usecase. checkpointDg and reportingClient may be nil
// to disable checkpoint persistence and reporting respectively.
func New(ledgerDg datagateway.LedgerDataGateway, checkpointDg datagateway.CheckpointDataGateway, reportingClient *reportingclient.ReportingClient, config Config) *Usecase {
	triggerSupply := config.TriggerSupply
	if triggerSupply == 0 {
		triggerSupply = ledger.DefaultTriggerSupply
	}
	countdown := config.CountdownDuration
	if countdown == 0 {
		countdown = ledger.DefaultCountdownDuration
	}
	return &Usecase{
		ledgerDg:         ledgerDg,
		checkpointDg:     checkpointDg,
		reportingClient:  reportingClient,
		defaultMintPrice: config.DefaultMintPrice,
		triggerSupply:    triggerSupply,
		countdown:        countdown,
		wheelRewards:     config.WheelRewards,
	}
}
