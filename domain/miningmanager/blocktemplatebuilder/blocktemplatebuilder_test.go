package blocktemplatebuilder

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/processes/transactionhandler"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/testutils"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/transactionhelper"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/gcoinproject/gcoind/util"
)

const goldColor externalapi.Color = 5

type fixture struct {
	tc       consensus.Consensus
	teardown func(keepDataDir bool)

	issuer *testutils.TestKey
	alice  *testutils.TestKey
	bob    *testutils.TestKey
	miner  *testutils.TestKey

	adminMint *externalapi.DomainTransaction
	license   *externalapi.DomainTransaction
	goldMint  *externalapi.DomainTransaction
	payment   *externalapi.DomainTransaction
}

// newFixture sets up a test consensus and a chain of transactions that
// licenses the gold color, mints it to alice and has alice pay bob with a fee
func newFixture(t *testing.T, testName string) *fixture {
	tc, teardown, err := consensus.NewFactory().NewTestConsensus(&dagconfig.RegtestParams, testName)
	if err != nil {
		t.Fatalf("NewTestConsensus: %+v", err)
	}
	authority := testutils.AuthorityTestKey()
	f := &fixture{
		tc:       tc,
		teardown: teardown,
		issuer:   testutils.SeededTestKey(0x11),
		alice:    testutils.SeededTestKey(0x22),
		bob:      testutils.SeededTestKey(0x33),
		miner:    testutils.SeededTestKey(0x44),
	}

	f.adminMint = signedTx(t, authority, externalapi.TxTypeMint,
		[]externalapi.DomainOutpoint{externalapi.NewNullOutpoint()},
		[]*externalapi.DomainTransactionOutput{
			testutils.Output(externalapi.NewColorAmount(constants.AdminColor, constants.UnitsPerCoin), authority.Address),
		}, nil, nil)

	payload, err := transactionhandler.EncodeLicenseInfo(&externalapi.LicenseInfo{Version: 1, Name: "gold"})
	if err != nil {
		t.Fatalf("EncodeLicenseInfo: %s", err)
	}
	f.license = signedTx(t, authority, externalapi.TxTypeLicense,
		[]externalapi.DomainOutpoint{outpointOf(f.adminMint, 0)},
		[]*externalapi.DomainTransactionOutput{
			testutils.Output(externalapi.NewColorAmount(goldColor, constants.LicenseTokenAmount), f.issuer.Address),
		}, nil, payload)

	f.goldMint = signedTx(t, f.issuer, externalapi.TxTypeMint,
		[]externalapi.DomainOutpoint{externalapi.NewNullOutpoint()},
		[]*externalapi.DomainTransactionOutput{
			testutils.Output(externalapi.NewColorAmount(goldColor, 1000), f.alice.Address),
		}, nil, nil)

	f.payment = signedTx(t, f.alice, externalapi.TxTypeNormal,
		[]externalapi.DomainOutpoint{outpointOf(f.goldMint, 0)},
		[]*externalapi.DomainTransactionOutput{
			testutils.Output(externalapi.NewColorAmount(goldColor, 400), f.bob.Address),
			testutils.Output(externalapi.NewColorAmount(goldColor, 590), f.alice.Address),
		}, externalapi.NewColorAmount(goldColor, 10), nil)
	return f
}

func signedTx(t *testing.T, key *testutils.TestKey, txType externalapi.TxType,
	outpoints []externalapi.DomainOutpoint, outputs []*externalapi.DomainTransactionOutput,
	fee *externalapi.ColorAmount, payload []byte) *externalapi.DomainTransaction {

	tx, err := testutils.SignedTransaction(key, txType, outpoints, outputs, fee, payload)
	if err != nil {
		t.Fatalf("SignedTransaction: %s", err)
	}
	return tx
}

func outpointOf(tx *externalapi.DomainTransaction, index uint32) externalapi.DomainOutpoint {
	return externalapi.DomainOutpoint{TransactionID: *consensushashing.TransactionID(tx), Index: index}
}

func checkTransactionOrder(t *testing.T, block *externalapi.DomainBlock, expected ...*externalapi.DomainTransaction) {
	if len(block.Transactions) != len(expected)+1 {
		t.Fatalf("expected %d transactions besides the coinbase, got %d",
			len(expected), len(block.Transactions)-1)
	}
	if !transactionhelper.IsCoinBase(block.Transactions[0]) {
		t.Fatalf("the first transaction is not a coinbase")
	}
	for i, tx := range expected {
		got := consensushashing.TransactionID(block.Transactions[i+1])
		if !got.Equal(consensushashing.TransactionID(tx)) {
			t.Fatalf("unexpected transaction %s at index %d", got, i+1)
		}
	}
}

func insertBlock(t *testing.T, tc consensus.Consensus, block *externalapi.DomainBlock) {
	verdict, err := tc.ValidateAndInsertBlock(block)
	if err != nil {
		t.Fatalf("ValidateAndInsertBlock: %+v", err)
	}
	if !verdict.Accepted {
		t.Fatalf("the template block was rejected: %s", verdict)
	}
}

func TestCreateBlockTemplate(t *testing.T) {
	f := newFixture(t, "TestCreateBlockTemplate")
	defer f.teardown(false)

	builder := New(f.tc, DefaultPolicy())

	// Children come before their parents and have to wait for them
	template, err := builder.CreateBlockTemplate(f.miner.Address,
		[]*externalapi.DomainTransaction{f.license, f.adminMint})
	if err != nil {
		t.Fatalf("CreateBlockTemplate: %+v", err)
	}
	block := template.Block
	checkTransactionOrder(t, block, f.adminMint, f.license)
	if height, _ := f.tc.GetTip(); height != 0 {
		t.Fatalf("building a template moved the tip to %d", height)
	}
	if block.Header.Height != 1 || !block.Header.ParentHash.Equal(dagconfig.RegtestParams.GenesisHash) {
		t.Fatalf("the template does not build on the genesis block")
	}
	if !template.Fees[0].IsEmpty() || len(block.Transactions[0].Outputs) != 1 {
		t.Fatalf("expected a template without fees")
	}
	insertBlock(t, f.tc, block)

	template, err = builder.CreateBlockTemplate(f.miner.Address,
		[]*externalapi.DomainTransaction{f.payment, f.goldMint})
	if err != nil {
		t.Fatalf("CreateBlockTemplate: %+v", err)
	}
	block = template.Block
	checkTransactionOrder(t, block, f.goldMint, f.payment)

	totalFees := externalapi.NewColorAmount(goldColor, 10)
	if len(template.Fees) != len(block.Transactions) || len(template.SigOpCounts) != len(block.Transactions) {
		t.Fatalf("expected a fee and a sigop count per transaction")
	}
	if !template.Fees[0].Equal(totalFees.Negate()) {
		t.Fatalf("expected the coinbase fee entry to be %s, got %s", totalFees.Negate(), template.Fees[0])
	}
	if !template.Fees[1].IsEmpty() || !template.Fees[2].Equal(totalFees) {
		t.Fatalf("unexpected transaction fees %s and %s", template.Fees[1], template.Fees[2])
	}
	for i, sigOps := range template.SigOpCounts {
		if sigOps != 1 {
			t.Fatalf("expected one signature operation for transaction %d, got %d", i, sigOps)
		}
	}

	coinbase := block.Transactions[0]
	if len(coinbase.Outputs) != 2 || !coinbase.Outputs[1].Value.Equal(totalFees) ||
		coinbase.Outputs[1].Address != f.miner.Address {

		t.Fatalf("the coinbase does not pay the fees to the miner")
	}

	insertBlock(t, f.tc, block)

	balance, err := f.tc.GetBalance(f.bob.Address)
	if err != nil {
		t.Fatalf("GetBalance: %+v", err)
	}
	if value, _ := balance.Get(goldColor); value != 400 {
		t.Fatalf("expected bob to hold 400 gold, got %s", balance)
	}
	balance, err = f.tc.GetBalance(f.miner.Address)
	if err != nil {
		t.Fatalf("GetBalance: %+v", err)
	}
	if value, _ := balance.Get(goldColor); value != 10 {
		t.Fatalf("expected the miner to collect 10 gold, got %s", balance)
	}
}

func TestCreateBlockTemplateSkipsInvalidCandidates(t *testing.T) {
	f := newFixture(t, "TestCreateBlockTemplateSkipsInvalidCandidates")
	defer f.teardown(false)

	tampered := f.adminMint.Clone()
	tampered.Outputs[0].Value = externalapi.NewColorAmount(constants.AdminColor, 2*constants.UnitsPerCoin)

	// The gold mint is unauthorized without its license, and the payment
	// never gets its parent
	candidates := []*externalapi.DomainTransaction{
		f.payment, f.goldMint, tampered, f.adminMint, f.adminMint,
		transactionhelper.NewCoinbaseTransaction(f.miner.Address, externalapi.NewEmptyColorAmount(), 1),
	}
	template, err := New(f.tc, DefaultPolicy()).CreateBlockTemplate(f.miner.Address, candidates)
	if err != nil {
		t.Fatalf("CreateBlockTemplate: %+v", err)
	}
	checkTransactionOrder(t, template.Block, f.adminMint)
	if !template.Fees[0].IsEmpty() || len(template.Block.Transactions[0].Outputs) != 1 {
		t.Fatalf("expected a template without fees")
	}
	insertBlock(t, f.tc, template.Block)
}

func TestCreateBlockTemplateMissingInputs(t *testing.T) {
	f := newFixture(t, "TestCreateBlockTemplateMissingInputs")
	defer f.teardown(false)

	template, err := New(f.tc, nil).CreateBlockTemplate(f.miner.Address,
		[]*externalapi.DomainTransaction{f.payment})
	if err != nil {
		t.Fatalf("CreateBlockTemplate: %+v", err)
	}
	checkTransactionOrder(t, template.Block)
	insertBlock(t, f.tc, template.Block)
}

func TestCreateBlockTemplatePolicy(t *testing.T) {
	tests := []struct {
		name     string
		policy   *Policy
		expected func(f *fixture) []*externalapi.DomainTransaction
	}{
		{
			name:   "default",
			policy: DefaultPolicy(),
			expected: func(f *fixture) []*externalapi.DomainTransaction {
				return []*externalapi.DomainTransaction{f.adminMint, f.license}
			},
		},
		{
			name: "fee sorted skips fee-less transactions",
			policy: &Policy{
				BlockMaxSize:      constants.DefaultBlockMaxSize,
				BlockPrioritySize: 0,
				MinRelayTxFee:     util.NewFeeRateFromValue(constants.DefaultMinRelayTxFee),
			},
			expected: func(f *fixture) []*externalapi.DomainTransaction {
				return nil
			},
		},
		{
			name: "fee-less transactions fit below the minimum block size",
			policy: &Policy{
				BlockMaxSize:      constants.DefaultBlockMaxSize,
				BlockMinSize:      constants.DefaultBlockMaxSize,
				BlockPrioritySize: 0,
				MinRelayTxFee:     util.NewFeeRateFromValue(constants.DefaultMinRelayTxFee),
			},
			expected: func(f *fixture) []*externalapi.DomainTransaction {
				return []*externalapi.DomainTransaction{f.adminMint, f.license}
			},
		},
		{
			name: "priority area full",
			policy: &Policy{
				BlockMaxSize:      constants.DefaultBlockMaxSize,
				BlockPrioritySize: blockSizeReserve + 1,
				MinRelayTxFee:     util.NewFeeRateFromValue(constants.DefaultMinRelayTxFee),
			},
			expected: func(f *fixture) []*externalapi.DomainTransaction {
				return nil
			},
		},
		{
			name: "block full",
			policy: &Policy{
				BlockMaxSize:      blockSizeReserve + 1,
				BlockPrioritySize: blockSizeReserve + 1,
			},
			expected: func(f *fixture) []*externalapi.DomainTransaction {
				return nil
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, "TestCreateBlockTemplatePolicy")
			defer f.teardown(false)

			template, err := New(f.tc, test.policy).CreateBlockTemplate(f.miner.Address,
				[]*externalapi.DomainTransaction{f.license, f.adminMint})
			if err != nil {
				t.Fatalf("CreateBlockTemplate: %+v", err)
			}
			checkTransactionOrder(t, template.Block, test.expected(f)...)
			insertBlock(t, f.tc, template.Block)
		})
	}
}

func TestCreateBlockTemplateInvalidAddress(t *testing.T) {
	f := newFixture(t, "TestCreateBlockTemplateInvalidAddress")
	defer f.teardown(false)

	_, err := New(f.tc, nil).CreateBlockTemplate("not an address", nil)
	if err == nil {
		t.Fatalf("expected an error for an invalid coinbase address")
	}
}

func TestSuccessiveTemplates(t *testing.T) {
	f := newFixture(t, "TestSuccessiveTemplates")
	defer f.teardown(false)

	builder := New(f.tc, nil)
	for i, candidates := range [][]*externalapi.DomainTransaction{
		{f.adminMint, f.license},
		{f.goldMint},
		{f.payment},
		nil,
	} {
		template, err := builder.CreateBlockTemplate(f.miner.Address, candidates)
		if err != nil {
			t.Fatalf("CreateBlockTemplate: %+v", err)
		}
		if template.Block.Header.Height != uint64(i+1) {
			t.Fatalf("expected a template at height %d, got %d", i+1, template.Block.Header.Height)
		}
		checkTransactionOrder(t, template.Block, candidates...)
		insertBlock(t, f.tc, template.Block)
	}
}
