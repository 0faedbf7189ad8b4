//   Copyright (C) 2020 ZVChain
//
//   This program is free software: you can redistribute it and/or modify
//   it under the terms of the GNU General Public License as published by
//   the Free Software Foundation, either version 3 of the License, or
//   (at your option) any later version.
//
//   This program is distributed in the hope that it will be useful,
//   but WITHOUT ANY WARRANTY; without even the implied warranty of
//   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//   GNU General Public License for more details.
//
//   You should have received a copy of the GNU General Public License
//   along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cli implements the tokensale command line tool. It drives the sale
// core against the local databases and runs the periodic vested-release loop
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/core"
	"github.com/zvchain/tokensale/log"
	"github.com/zvchain/tokensale/middleware"
	"github.com/zvchain/tokensale/middleware/ticker"
	time2 "github.com/zvchain/tokensale/middleware/time"
	"github.com/zvchain/tokensale/storage/account"
	"github.com/zvchain/tokensale/storage/authority"
	"github.com/zvchain/tokensale/storage/salestore"
)

// Version of the tokensale tool
const Version = "1.0.0"

type App struct {
	cfg      *serviceConfig
	operator common.Address

	ledger    *account.TokenLedger
	whitelist *authority.Whitelist
	store     *salestore.Store

	vesting *core.VestingLedger
	sale    *core.SaleController

	ticker *ticker.GlobalTicker
}

func NewApp() *App {
	return &App{}
}

func (app *App) Run() {
	kp := kingpin.New("tokensale", "A timed fundraising sale with vested reward distribution.")
	kp.HelpFlag.Short('h')
	configFile := kp.Flag("config", "config file").Default("sale.ini").String()
	keyfile := kp.Flag("keyfile", "the operator keyfile path").Short('k').Default("operator.keyfile").String()

	versionCmd := kp.Command("version", "show tokensale version")

	keyfileCmd := kp.Command("keyfile", "create the operator keyfile")
	keyfileAddr := keyfileCmd.Arg("address", "the operator address").Required().String()

	wlAddCmd := kp.Command("whitelist-add", "admit a contributor address")
	wlAddAddr := wlAddCmd.Arg("address", "the contributor address").Required().String()
	wlRemoveCmd := kp.Command("whitelist-remove", "revoke a contributor address")
	wlRemoveAddr := wlRemoveCmd.Arg("address", "the contributor address").Required().String()

	contributeCmd := kp.Command("contribute", "record an incoming contribution")
	contributeFrom := contributeCmd.Flag("from", "the contributor address").Required().String()
	contributeAmount := contributeCmd.Flag("amount", "the contribution amount, e.g. 100zvc").Required().String()

	issueCmd := kp.Command("issue", "issue reward units to a vetted beneficiary")
	issueTo := issueCmd.Flag("to", "the beneficiary address").Required().String()
	issueAmount := issueCmd.Flag("amount", "the reward amount, e.g. 100zvc").Required().String()

	bonusCmd := kp.Command("bonus", "issue a reward with a vested bonus share")
	bonusTo := bonusCmd.Flag("to", "the beneficiary address").Required().String()
	bonusAmount := bonusCmd.Flag("amount", "the reward amount, e.g. 100zvc").Required().String()

	finalizeCmd := kp.Command("finalize", "freeze issuance and close the sale for good")

	statusCmd := kp.Command("status", "show the current sale state")

	runCmd := kp.Command("run", "run the vested release loop")

	command, err := kp.Parse(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("%s, try --help", err)
	}

	switch command {
	case versionCmd.FullCommand():
		fmt.Println("tokensale Version:", Version)
		os.Exit(0)
	case keyfileCmd.FullCommand():
		err = app.createKeyfile(*keyfile, *keyfileAddr)
	case wlAddCmd.FullCommand():
		err = app.withService(*configFile, "", func() error {
			return app.whitelist.Add(common.StringToAddress(*wlAddAddr))
		})
	case wlRemoveCmd.FullCommand():
		err = app.withService(*configFile, "", func() error {
			return app.whitelist.Remove(common.StringToAddress(*wlRemoveAddr))
		})
	case contributeCmd.FullCommand():
		err = app.withService(*configFile, "", func() error {
			amount, e := common.ParseCoin(*contributeAmount)
			if e != nil {
				return e
			}
			return app.sale.AcceptContribution(common.StringToAddress(*contributeFrom), amount)
		})
	case issueCmd.FullCommand():
		err = app.withService(*configFile, *keyfile, func() error {
			amount, e := common.ParseCoin(*issueAmount)
			if e != nil {
				return e
			}
			return app.sale.DirectIssue(app.operator, common.StringToAddress(*issueTo), amount)
		})
	case bonusCmd.FullCommand():
		err = app.withService(*configFile, *keyfile, func() error {
			amount, e := common.ParseCoin(*bonusAmount)
			if e != nil {
				return e
			}
			return app.sale.CreateBonusAllocation(app.operator, common.StringToAddress(*bonusTo), amount)
		})
	case finalizeCmd.FullCommand():
		err = app.withService(*configFile, *keyfile, func() error {
			return app.sale.Finalize(app.operator)
		})
	case statusCmd.FullCommand():
		err = app.withService(*configFile, "", func() error {
			fmt.Printf("status:       %v\n", app.sale.Status())
			fmt.Printf("total raised: %v RA\n", app.sale.TotalRaised())
			fmt.Printf("allocations:  %v\n", app.vesting.Count())
			fmt.Printf("interval:     %v/%v\n", app.vesting.CurrentInterval(), app.cfg.numIntervals)
			return nil
		})
	case runCmd.FullCommand():
		err = app.serve(*configFile, *keyfile)
	}
	if err != nil {
		fmt.Println(err.Error())
		log.DefaultLogger.Errorf("command %v fail: %v", command, err)
		os.Exit(1)
	}
}

func (app *App) createKeyfile(file string, addr string) error {
	if !common.ValidateAddress(addr) {
		return fmt.Errorf("invalid operator address %v", addr)
	}
	operator := common.StringToAddress(addr)
	password, err := promptPassword()
	if err != nil {
		return err
	}
	if err := storeOperator(file, operator, password); err != nil {
		return err
	}
	fmt.Println("operator keyfile written to", file)
	return nil
}

// withService opens the databases, rebuilds the sale core from the stored
// snapshots, runs fn, and persists the resulting state. An empty keyfile path
// skips the operator unlock for commands that do not need it
func (app *App) withService(configFile, keyfile string, fn func() error) error {
	if err := app.open(configFile, keyfile); err != nil {
		return err
	}
	defer app.close()

	if err := fn(); err != nil {
		return err
	}
	return app.persist()
}

func (app *App) open(configFile, keyfile string) error {
	common.InitConf(configFile)
	cfg, err := loadServiceConfig()
	if err != nil {
		return err
	}
	app.cfg = cfg

	if keyfile != "" {
		password, err := promptPassword()
		if err != nil {
			return err
		}
		operator, err := loadOperator(keyfile, password)
		if err != nil {
			return err
		}
		if operator != cfg.sale.Admin {
			return fmt.Errorf("keyfile operator %v is not the sale administrator", operator)
		}
		app.operator = operator
	}

	if time2.TSInstance == nil {
		middleware.InitMiddleware()
	}

	if err := os.MkdirAll(cfg.dataDir, 0755); err != nil {
		return err
	}
	app.ledger, err = account.NewPersistentTokenLedger(filepath.Join(cfg.dataDir, "ledger.db"))
	if err != nil {
		return err
	}
	app.whitelist, err = authority.NewWhitelist(filepath.Join(cfg.dataDir, "whitelist.db"))
	if err != nil {
		return err
	}
	app.store, err = salestore.NewStore(filepath.Join(cfg.dataDir, "sale.db"))
	if err != nil {
		return err
	}

	app.vesting, err = core.NewVestingLedger(cfg.sale.Admin, cfg.unlockAt, cfg.intervalSeconds, cfg.numIntervals, time2.TSInstance)
	if err != nil {
		return err
	}
	if data, err := app.store.LoadVesting(); err != nil {
		return err
	} else if data != nil {
		if err := app.vesting.Restore(data); err != nil {
			return err
		}
	}

	app.sale, err = core.NewSaleController(cfg.sale, app.vesting, app.whitelist, app.ledger, time2.TSInstance)
	if err != nil {
		return err
	}
	if data, err := app.store.LoadSale(); err != nil {
		return err
	} else if data != nil {
		if err := app.sale.Restore(data); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) persist() error {
	if err := app.store.StoreVesting(app.vesting.Snapshot()); err != nil {
		return err
	}
	return app.store.StoreSale(app.sale.Snapshot())
}

func (app *App) close() {
	if app.store != nil {
		app.store.Close()
	}
	if app.whitelist != nil {
		app.whitelist.Close()
	}
	if app.ledger != nil {
		app.ledger.Close()
	}
}

// serve runs the periodic vested-release loop until interrupted
func (app *App) serve(configFile, keyfile string) error {
	if err := app.open(configFile, keyfile); err != nil {
		return err
	}
	defer app.close()

	app.ticker = ticker.NewGlobalTicker("sale_service")
	app.ticker.RegisterPeriodicRoutine("vested_release", app.releaseRoutine, app.cfg.releasePeriod)
	app.ticker.StartTickerRoutine("vested_release", false)

	fmt.Println("sale service started, release period", app.cfg.releasePeriod, "seconds")
	log.DefaultLogger.Infof("sale service started: admin %v release period %vs", app.cfg.sale.Admin, app.cfg.releasePeriod)

	<-signals()
	fmt.Println("exiting...")
	app.ticker.StopTickerRoutine("vested_release")
	return app.persist()
}

func (app *App) releaseRoutine() bool {
	released, err := app.sale.ReleaseVestedRewards(app.operator)
	if err != nil {
		log.DefaultLogger.Errorf("vested release fail: %v", err)
		return false
	}
	if released {
		log.DefaultLogger.Infof("vested rewards released at interval %v", app.vesting.CurrentInterval())
	}
	if err := app.persist(); err != nil {
		log.DefaultLogger.Errorf("persist sale state fail: %v", err)
		return false
	}
	return true
}
