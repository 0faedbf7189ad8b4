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

package middleware

import (
	"os"
	"runtime"
	"time"
)

// how to use?
// kill -USR1 pid
// tail stack.log

const stackFile = "./stack.log"

func dumpStacks() {
	buf := make([]byte, 1<<20)
	buf = buf[:runtime.Stack(buf, true)]

	fd, err := os.OpenFile(stackFile, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0666)
	if err != nil {
		return
	}
	defer fd.Close()

	fd.WriteString("\n\n" + time.Now().Format("2006-01-02 15:04:05") + " goroutine stacks:\n")
	fd.Write(buf)
}
