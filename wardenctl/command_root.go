// Copyright 2026 The Warden Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import "github.com/spf13/cobra"

var flagAddr string
var flagToken string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wardenctl",
		Short:         "Game server warden CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flagAddr, "addr", "a", "",
		"daemon address (default $WARDEN_ADDR or http://127.0.0.1:8321)")
	root.PersistentFlags().StringVarP(&flagToken, "token", "t", "",
		"auth token (default $WARDEN_TOKEN)")

	root.AddCommand(newStartCmd())
	root.AddCommand(newStopCmd())
	root.AddCommand(newRestartCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newLogCmd())

	return root
}
