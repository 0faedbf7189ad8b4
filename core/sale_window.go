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

package core

import (
	"github.com/zvchain/tokensale/middleware/time"
)

// TimedWindow is the base time gate of the sale: contributions are admitted
// only between Start and End
type TimedWindow struct {
	Start time.TimeStamp
	End   time.TimeStamp
}

// HasStarted checks if the window is open at the given moment
func (w TimedWindow) HasStarted(now time.TimeStamp) bool {
	return !w.Start.After(now)
}

// HasEnded checks if the window is already closed at the given moment
func (w TimedWindow) HasEnded(now time.TimeStamp) bool {
	return now.After(w.End)
}
