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
	"path/filepath"
	"strings"

	"github.com/notargets/gogrid/InputParameters"
	"github.com/notargets/gogrid/gridcheck"
	"github.com/notargets/gogrid/mesh"
	"github.com/notargets/gogrid/sgrid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Consistency check of the index set of a grid",
	Long: `
Checks the index set of a structured cube grid or of a grid read from a gmsh
2.2 or SU2 file against the generic reference elements,

gogrid check -N 2,2,2
gogrid check -F mesh.msh
gogrid check -I check.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			cp  *InputParameters.CheckParameters
			out io.Writer
			rep *gridcheck.Report
		)
		if cp, err = processCheckInput(cmd); err != nil {
			return
		}
		cp.Print()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			out = os.Stdout
		}
		rep, err = RunCheck(cp, viper.GetFloat64("tolerance"), out)
		if rep != nil {
			for _, w := range rep.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
		}
		if err != nil {
			return
		}
		fmt.Printf("index set is consistent\n")
		return
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	CheckCmd.Flags().StringP("gridFile", "F", "", "grid file to read in gmsh 2.2 (.msh) or SU2 (.su2) format")
	CheckCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for check parameters like:\n\t- Extents\n\t- Codims")
	CheckCmd.Flags().IntSliceP("extents", "N", []int{2, 2, 2}, "cells along each axis of the structured grid")
	CheckCmd.Flags().Float64Slice("lengths", nil, "length of each axis of the structured grid, defaults to 1")
	CheckCmd.Flags().IntSlice("codims", nil, "codimensions to check, all by default")
	CheckCmd.Flags().Bool("randomAccess", false, "also check random access iterators")
	CheckCmd.Flags().Bool("verbose", false, "print the detailed trace of the check")
}

func processCheckInput(cmd *cobra.Command) (cp *InputParameters.CheckParameters, err error) {
	var paramFile string
	if paramFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	if len(paramFile) != 0 {
		return InputParameters.ReadCheckParameters(paramFile)
	}
	cp = &InputParameters.CheckParameters{Title: "command line"}
	if cp.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
		return
	}
	if cp.Extents, err = cmd.Flags().GetIntSlice("extents"); err != nil {
		return
	}
	if cp.Lengths, err = cmd.Flags().GetFloat64Slice("lengths"); err != nil {
		return
	}
	if cp.Codims, err = cmd.Flags().GetIntSlice("codims"); err != nil {
		return
	}
	cp.RandomAccess, _ = cmd.Flags().GetBool("randomAccess")
	return
}

// BuildView reads the grid file of the parameters or builds their structured grid
func BuildView(cp *InputParameters.CheckParameters) (view gridcheck.GridView, err error) {
	if !cp.Structured() {
		var m *mesh.Mesh
		if strings.EqualFold(filepath.Ext(cp.GridFile), ".su2") {
			m, err = mesh.ReadSU2(cp.GridFile)
		} else {
			m, err = mesh.ReadGmsh(cp.GridFile)
		}
		if err != nil {
			return
		}
		m.PrintStatistics(os.Stdout)
		return mesh.NewGrid(m)
	}
	L := cp.Lengths
	if len(L) == 0 {
		L = make([]float64, len(cp.Extents))
		for i := range L {
			L[i] = 1
		}
	}
	return sgrid.New(cp.Extents, L)
}

// RunCheck checks the view described by the parameters, the tolerance of the
// parameters takes precedence over the given one
func RunCheck(cp *InputParameters.CheckParameters, tolerance float64, out io.Writer) (rep *gridcheck.Report, err error) {
	var view gridcheck.GridView
	if view, err = BuildView(cp); err != nil {
		return
	}
	c := &gridcheck.Checker{
		Out:                          out,
		Tolerance:                    tolerance,
		LevelIndex:                   cp.LevelIndex,
		EnableLevelIntersectionCheck: cp.EnableLevelIntersectionCheck,
	}
	if cp.Tolerance > 0 {
		c.Tolerance = cp.Tolerance
	}
	klog.V(1).Infof("checking %d dimensional view, tolerance %g", view.Dimension(), c.Tolerance)
	if len(cp.Codims) == 0 {
		if rep, err = c.CheckIndexSet(view); err != nil {
			return
		}
	} else {
		rep = &gridcheck.Report{}
		for _, codim := range cp.Codims {
			var r *gridcheck.Report
			r, err = c.CheckIndexSetForCodim(view, codim)
			if r != nil {
				rep.Warnings = append(rep.Warnings, r.Warnings...)
			}
			if err != nil {
				return
			}
		}
	}
	if cp.RandomAccess {
		if err = c.CheckRandomAccessIterators(view); errors.Cause(err) == gridcheck.ErrNotSupported {
			rep.Warnings = append(rep.Warnings, err.Error())
			err = nil
		}
	}
	return
}
