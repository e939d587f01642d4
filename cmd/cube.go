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
	"os"

	"github.com/notargets/gogrid/numbering"
	"github.com/spf13/cobra"
)

// CubeCmd represents the cube command
var CubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Consecutive numbering of the entities of a structured cube grid",
	Long: `
Prints the number of entities per codimension of a cube grid with N[i] cells
along axis i, optionally listing the doubled coordinates of every entity,

gogrid cube -N 2,3 --list`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			N    []int
			list bool
			cm   *numbering.CubeMapper
		)
		if N, err = cmd.Flags().GetIntSlice("extents"); err != nil {
			return
		}
		list, _ = cmd.Flags().GetBool("list")
		if cm, err = numbering.NewCubeMapper(N); err != nil {
			return
		}
		cm.Print(os.Stdout, 0)
		if list {
			err = listCube(cm)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(CubeCmd)
	CubeCmd.Flags().IntSliceP("extents", "N", []int{1, 1, 1}, "number of cells along each axis")
	CubeCmd.Flags().BoolP("list", "l", false, "list the entities of every codimension")
}

func listCube(cm *numbering.CubeMapper) (err error) {
	for c := 0; c <= cm.Dim(); c++ {
		fmt.Printf("codim %d\n", c)
		for i := 0; i < cm.Elements(c); i++ {
			var z []int
			if z, err = cm.Z(i, c); err != nil {
				return
			}
			fmt.Printf("%6d z = %v\n", i, z)
		}
	}
	return
}
