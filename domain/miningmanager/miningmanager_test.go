package miningmanager_test

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/testutils"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/gcoinproject/gcoind/domain/miningmanager"
)

func TestMineBlock(t *testing.T) {
	tc, teardown, err := consensus.NewFactory().NewTestConsensus(&dagconfig.RegtestParams, "TestMineBlock")
	if err != nil {
		t.Fatalf("NewTestConsensus: %+v", err)
	}
	defer teardown(false)

	authority := testutils.AuthorityTestKey()
	miner := testutils.SeededTestKey(0x44)
	adminMint, err := testutils.SignedTransaction(authority, externalapi.TxTypeMint,
		[]externalapi.DomainOutpoint{externalapi.NewNullOutpoint()},
		[]*externalapi.DomainTransactionOutput{
			testutils.Output(externalapi.NewColorAmount(constants.AdminColor, constants.UnitsPerCoin), authority.Address),
		}, nil, nil)
	if err != nil {
		t.Fatalf("SignedTransaction: %s", err)
	}

	miningManager := miningmanager.NewFactory().NewMiningManager(tc, nil)

	template, err := miningManager.GetBlockTemplate(miner.Address, []*externalapi.DomainTransaction{adminMint})
	if err != nil {
		t.Fatalf("GetBlockTemplate: %+v", err)
	}
	if len(template.Block.Transactions) != 2 {
		t.Fatalf("expected the coinbase and the mint, got %d transactions", len(template.Block.Transactions))
	}

	block, verdict, err := miningManager.MineBlock(miner.Address, []*externalapi.DomainTransaction{adminMint})
	if err != nil {
		t.Fatalf("MineBlock: %+v", err)
	}
	if !verdict.Accepted {
		t.Fatalf("the mined block was rejected: %s", verdict)
	}
	height, tipHash := tc.GetTip()
	if height != 1 || !tipHash.Equal(consensushashing.BlockHash(block)) {
		t.Fatalf("the mined block is not the tip")
	}

	// The mint is in the chain now and would overwrite its own outputs
	block, verdict, err = miningManager.MineBlock(miner.Address, []*externalapi.DomainTransaction{adminMint})
	if err != nil {
		t.Fatalf("MineBlock: %+v", err)
	}
	if !verdict.Accepted || len(block.Transactions) != 1 || block.Header.Height != 2 {
		t.Fatalf("expected an accepted empty block at height 2")
	}
}
