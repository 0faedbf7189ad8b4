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
	"github.com/zvchain/tokensale/common"
)

// adminGuard holds the administrator capability of a component.
// Every gated operation checks the operator against the stored admin first.
// Ownership moves only through the explicit two-step propose/accept flow.
// Callers must hold the owning component's lock
type adminGuard struct {
	admin        common.Address
	pendingAdmin common.Address
}

func (g *adminGuard) requireAdmin(operator common.Address) error {
	if operator != g.admin {
		return ErrUnauthorized
	}
	return nil
}

// proposeAdmin nominates the next administrator. Only the current
// administrator may nominate; the nomination takes effect on accept
func (g *adminGuard) proposeAdmin(operator, next common.Address) error {
	if err := g.requireAdmin(operator); err != nil {
		return err
	}
	g.pendingAdmin = next
	return nil
}

// acceptAdmin completes the transfer. Only the nominated address may accept
func (g *adminGuard) acceptAdmin(operator common.Address) error {
	if g.pendingAdmin.IsZero() || operator != g.pendingAdmin {
		return ErrUnauthorized
	}
	g.admin = g.pendingAdmin
	g.pendingAdmin = common.Address{}
	return nil
}

// Admin returns the current administrator address
func (g *adminGuard) Admin() common.Address {
	return g.admin
}
