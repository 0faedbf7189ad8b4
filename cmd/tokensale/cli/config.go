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

package cli

import (
	"fmt"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/core"
	time2 "github.com/zvchain/tokensale/middleware/time"
)

// Section is the default configuration section
const Section = "sale"

// serviceConfig collects everything the sale service needs from the ini file
type serviceConfig struct {
	sale *core.SaleConfig

	unlockAt        time2.TimeStamp
	intervalSeconds int64
	numIntervals    uint64

	dataDir       string
	releasePeriod uint32 // seconds between vested release attempts
}

func getAddress(key string) (common.Address, error) {
	s := common.GlobalConf.GetString(Section, key, "")
	if s == "" {
		return common.Address{}, fmt.Errorf("missing %v address in section [%v]", key, Section)
	}
	if !common.ValidateAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %v address %v", key, s)
	}
	return common.StringToAddress(s), nil
}

func getCoin(key string, defaultValue string) (uint64, error) {
	s := common.GlobalConf.GetString(Section, key, defaultValue)
	v, err := common.ParseCoin(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %v amount %v: %v", key, s, err)
	}
	return v, nil
}

// loadServiceConfig reads the [sale] section of the global configuration.
// common.InitConf must have been called before
func loadServiceConfig() (*serviceConfig, error) {
	admin, err := getAddress("admin")
	if err != nil {
		return nil, err
	}
	holding, err := getAddress("holding")
	if err != nil {
		return nil, err
	}

	capacity, err := getCoin("capacity", "1000000zvc")
	if err != nil {
		return nil, err
	}
	min, err := getCoin("min_contribution", "1zvc")
	if err != nil {
		return nil, err
	}
	max, err := getCoin("max_contribution", "10000zvc")
	if err != nil {
		return nil, err
	}

	start := common.GlobalConf.GetInt(Section, "start", 0)
	end := common.GlobalConf.GetInt(Section, "end", 0)
	if start <= 0 || end <= 0 {
		return nil, fmt.Errorf("sale start and end must be set")
	}

	cfg := &core.SaleConfig{
		Admin:           admin,
		Holding:         holding,
		Start:           time2.Int64ToTimeStamp(int64(start)),
		End:             time2.Int64ToTimeStamp(int64(end)),
		Capacity:        capacity,
		MinContribution: min,
		MaxContribution: max,
		Rate:            uint64(common.GlobalConf.GetInt(Section, "rate", 1)),
		AdminRate:       uint64(common.GlobalConf.GetInt(Section, "admin_rate", 0)),
		BonusPercent:    uint64(common.GlobalConf.GetInt(Section, "bonus_percent", 0)),
	}

	unlockAt := common.GlobalConf.GetInt(Section, "unlock_at", end)
	sc := &serviceConfig{
		sale:            cfg,
		unlockAt:        time2.Int64ToTimeStamp(int64(unlockAt)),
		intervalSeconds: int64(common.GlobalConf.GetInt(Section, "interval_seconds", 86400*30)),
		numIntervals:    uint64(common.GlobalConf.GetInt(Section, "num_intervals", 12)),
		dataDir:         common.GlobalConf.GetString(Section, "data_dir", "d_sale"),
		releasePeriod:   uint32(common.GlobalConf.GetInt(Section, "release_period", 3600)),
	}
	return sc, nil
}
