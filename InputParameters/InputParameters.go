package InputParameters

import (
	"fmt"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Parameters of a consistency check obtained from the YAML input file
type CheckParameters struct {
	Title string `yaml:"Title"`
	// GridFile is a gmsh 2.2 or .su2 file, a structured grid is built when empty
	GridFile   string    `yaml:"GridFile"`
	Extents    []int     `yaml:"Extents"` // cells per axis of the structured grid
	Lengths    []float64 `yaml:"Lengths"`
	Tolerance  float64   `yaml:"Tolerance"`
	LevelIndex bool      `yaml:"LevelIndex"`
	// Check sub-entities across intersections of a level index set
	EnableLevelIntersectionCheck bool  `yaml:"EnableLevelIntersectionCheck"`
	RandomAccess                 bool  `yaml:"RandomAccess"`
	Codims                       []int `yaml:"Codims"` // empty checks every codimension
}

func (cp *CheckParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, cp); err != nil {
		return
	}
	if len(cp.Lengths) != 0 && len(cp.Lengths) != len(cp.Extents) {
		return errors.Errorf("%d lengths for %d extents", len(cp.Lengths), len(cp.Extents))
	}
	if cp.Tolerance < 0 {
		return errors.Errorf("negative tolerance %g", cp.Tolerance)
	}
	return
}

func ReadCheckParameters(filename string) (cp *CheckParameters, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(filename); err != nil {
		return
	}
	cp = &CheckParameters{}
	if err = cp.Parse(data); err != nil {
		return nil, errors.Wrapf(err, "parameter file %s", filename)
	}
	return
}

// Structured reports whether the parameters describe a structured grid
func (cp *CheckParameters) Structured() bool { return len(cp.GridFile) == 0 }

func (cp *CheckParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	if cp.Structured() {
		fmt.Printf("%v\t\t= Extents\n", cp.Extents)
		fmt.Printf("%v\t\t= Lengths\n", cp.Lengths)
	} else {
		fmt.Printf("[%s]\t= Grid File\n", cp.GridFile)
	}
	fmt.Printf("%8.5g\t\t= Tolerance\n", cp.Tolerance)
	fmt.Printf("[%v]\t\t\t= Level Index\n", cp.LevelIndex)
	fmt.Printf("[%v]\t\t\t= Level Intersection Check\n", cp.EnableLevelIntersectionCheck)
	fmt.Printf("[%v]\t\t\t= Random Access\n", cp.RandomAccess)
	if len(cp.Codims) != 0 {
		fmt.Printf("%v\t\t\t= Codims\n", cp.Codims)
	}
}
