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

// Package middleware provides supporting functionality such as the event bus,
// the time zone independent time service and the ticker schedule
package middleware

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/zvchain/tokensale/middleware/notify"
	"github.com/zvchain/tokensale/middleware/time"
)

func InitMiddleware() error {
	notify.BUS = notify.NewBus()
	time.InitTimeSync()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGUSR1)
		for range sig {
			dumpStacks()
		}
	}()
	return nil
}
