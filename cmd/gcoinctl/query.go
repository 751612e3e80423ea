package main

import (
	"fmt"

	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

func owner(cfg *config.Config, conf *ownerConfig) error {
	color, err := util.ParseColor(conf.Color)
	if err != nil {
		return err
	}

	return withConsensus(cfg, func(tc consensus.Consensus) error {
		record, ok := tc.GetColorRecord(color)
		if !ok {
			return errors.Errorf("color %d is not licensed", color)
		}
		fmt.Printf("Color: %d\n", color)
		fmt.Printf("Owner: %s\n", record.Owner)
		if record.Info != nil {
			fmt.Printf("Name: %s\n", record.Info.Name)
			fmt.Printf("Member control: %t\n", record.Info.MemberControl)
			if record.Info.MaxSupply > 0 {
				fmt.Printf("Max supply: %s\n", util.FormatMoney(record.Info.MaxSupply))
			}
		}
		fmt.Printf("Minted supply: %s\n", util.FormatMoney(record.MintedSupply))
		return nil
	})
}

func balance(cfg *config.Config, conf *balanceConfig) error {
	address := externalapi.DomainAddress(conf.Address)
	_, err := util.DecodeAddress(address, cfg.NetParams().AddressPrefix)
	if err != nil {
		return err
	}

	return withConsensus(cfg, func(tc consensus.Consensus) error {
		utxos, err := tc.GetUTXOsByAddress(address)
		if err != nil {
			return err
		}
		balance, err := tc.GetBalance(address)
		if err != nil {
			return err
		}
		for _, pair := range utxos {
			printColorAmount(pair.Outpoint.String(), pair.UTXOEntry.Amount())
		}
		printColorAmount("Balance", balance)
		return nil
	})
}

func tip(cfg *config.Config) error {
	return withConsensus(cfg, func(tc consensus.Consensus) error {
		height, tipHash := tc.GetTip()
		fmt.Printf("Network: %s\n", tc.Params().Name)
		fmt.Printf("Tip: %s\n", tipHash)
		fmt.Printf("Height: %d\n", height)
		fmt.Printf("UTXO commitment: %s\n", tc.GetUTXOCommitment())
		return nil
	})
}
