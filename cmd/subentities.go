/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/notargets/gogrid/genericgeometry"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// SubEntitiesCmd represents the subentities command
var SubEntitiesCmd = &cobra.Command{
	Use:   "subentities",
	Short: "Verify the generic sub-entity numbering of reference topologies",
	Long: `
Checks that the numbering of every sub-entity of a topology agrees with the
numbering of its sub-sub-entities, for one topology id and dimension or for all
topologies up to a maximum dimension, and validates the fixed Dune numbering
tables against the generic numbering,

gogrid subentities --id 4 --dim 3 --verbose
gogrid subentities --all --maxDim 4`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		sm := &SubEntitiesModel{}
		id, _ := cmd.Flags().GetUint("id")
		sm.ID = uint32(id)
		sm.Dim, _ = cmd.Flags().GetInt("dim")
		sm.All, _ = cmd.Flags().GetBool("all")
		sm.MaxDim, _ = cmd.Flags().GetInt("maxDim")
		sm.Verbose, _ = cmd.Flags().GetBool("verbose")
		return RunSubEntities(os.Stdout, sm)
	},
}

type SubEntitiesModel struct {
	ID      uint32
	Dim     int
	All     bool
	MaxDim  int
	Verbose bool
}

// RunSubEntities checks the recursive numbering of the selected topologies,
// then the fixed Dune numbering tables
func RunSubEntities(w io.Writer, sm *SubEntitiesModel) (err error) {
	var nerr int
	if sm.All {
		for d := 0; d <= sm.MaxDim; d++ {
			for tid := uint32(0); tid < 1<<uint(d); tid += 2 {
				nerr += genericgeometry.CheckSubEntities(genericgeometry.TopologyFromID(tid, d), w, sm.Verbose)
			}
		}
	} else {
		if sm.Dim < 0 || sm.ID >= 1<<uint(sm.Dim) {
			return fmt.Errorf("topology id %d out of range for dimension %d", sm.ID, sm.Dim)
		}
		nerr = genericgeometry.CheckSubEntities(genericgeometry.TopologyFromID(sm.ID, sm.Dim), w, sm.Verbose)
	}
	if nerr != 0 {
		return fmt.Errorf("%d sub-entity numbering errors", nerr)
	}
	if err = genericgeometry.ValidateMapNumbering(); err != nil {
		return errors.Wrap(err, "Dune numbering tables")
	}
	fmt.Fprintf(w, "Dune numbering tables are consistent with the generic numbering\n")
	return
}

func init() {
	rootCmd.AddCommand(SubEntitiesCmd)
	SubEntitiesCmd.Flags().Uint("id", 0, "topology id, bit i-1 set for a prism extension in dimension i")
	SubEntitiesCmd.Flags().IntP("dim", "d", 3, "topology dimension")
	SubEntitiesCmd.Flags().BoolP("all", "a", false, "check all topologies up to maxDim")
	SubEntitiesCmd.Flags().Int("maxDim", 4, "maximum dimension checked with --all")
	SubEntitiesCmd.Flags().Bool("verbose", false, "print every sub-entity number")
}
