// Copyright 2025 github.com/dwnfan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ata

import (
	"github.com/gagliardetto/solana-go"
)

// ProgramName is the name of the Associated Token Account program
const ProgramName = "Associated Token Account Program"

// ProgramID is the ID of the Associated Token Account program
var ProgramID = solana.SPLAssociatedTokenAccountProgramID

// FindAddress derives the associated token account of wallet for mint
// under the given token program.
func FindAddress(
	wallet solana.PublicKey,
	mint solana.PublicKey,
	tokenProgram solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		wallet[:],
		tokenProgram[:],
		mint[:],
	},
		ProgramID,
	)
}

// MustFindAddress is FindAddress for callers holding already validated keys.
func MustFindAddress(wallet, mint, tokenProgram solana.PublicKey) solana.PublicKey {
	addr, _, err := FindAddress(wallet, mint, tokenProgram)
	if err != nil {
		panic(err)
	}
	return addr
}
