package consensus

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/gcoinproject/gcoind/infrastructure/db/database/ldb"
)

func TestNewConsensus(t *testing.T) {
	f := NewFactory()

	tmpDir, err := ioutil.TempDir("", "TestNewConsensus")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	defer os.RemoveAll(tmpDir)

	_, err = f.NewConsensus(&Config{}, nil)
	if err == nil {
		t.Fatalf("expected an error for a config without params")
	}

	db, err := ldb.NewLevelDB(tmpDir, 8)
	if err != nil {
		t.Fatalf("error in NewLevelDB: %s", err)
	}
	config := &Config{Params: &dagconfig.RegtestParams}
	tc, err := f.NewConsensus(config, db)
	if err != nil {
		t.Fatalf("error in NewConsensus: %+v", err)
	}

	flow := newFlow(t)
	for _, tx := range flow.transactions() {
		verdict, err := tc.ApplyTransaction(tx)
		if err != nil {
			t.Fatalf("ApplyTransaction: %+v", err)
		}
		if !verdict.Accepted {
			t.Fatalf("transaction rejected: %s", verdict)
		}
	}
	block := buildBlock(t, tc, flow.miner.Address, nil)
	verdict, err := tc.ValidateAndInsertBlock(block)
	if err != nil {
		t.Fatalf("ValidateAndInsertBlock: %+v", err)
	}
	if !verdict.Accepted {
		t.Fatalf("block rejected: %s", verdict)
	}
	commitment := tc.GetUTXOCommitment()

	err = db.Close()
	if err != nil {
		t.Fatalf("Close: %s", err)
	}

	db, err = ldb.NewLevelDB(tmpDir, 8)
	if err != nil {
		t.Fatalf("error in NewLevelDB: %s", err)
	}
	defer db.Close()
	reopened, err := f.NewConsensus(config, db)
	if err != nil {
		t.Fatalf("error in NewConsensus: %+v", err)
	}

	height, tipHash := reopened.GetTip()
	if height != 1 || !tipHash.Equal(consensushashing.BlockHash(block)) {
		t.Fatalf("the tip was not persisted")
	}
	if !reopened.GetUTXOCommitment().Equal(commitment) {
		t.Fatalf("the UTXO commitment was not persisted")
	}
	owner, ok := reopened.GetOwner(goldColor)
	if !ok || owner != flow.issuer.Address {
		t.Fatalf("the gold license was not persisted")
	}
	if owner, _ := reopened.GetOwner(constants.AdminColor); owner != dagconfig.RegtestParams.LicenseAuthority {
		t.Fatalf("the admin color changed owner to %s", owner)
	}
	checkBalance(t, reopened, flow.bob.Address, externalapi.NewColorAmount(goldColor, 400))

	colors := reopened.GetColors()
	if len(colors) != 2 || colors[0] != constants.AdminColor || colors[1] != goldColor {
		t.Fatalf("unexpected colors %v", colors)
	}
}
