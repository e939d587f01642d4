package gridcheck

import (
	"fmt"
	"io"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/notargets/gogrid/genericgeometry"
	"github.com/notargets/gogrid/types"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/*
Checker cross-validates the index set of a grid view against the generic
reference elements. Fatal inconsistencies are returned as errors wrapping
ErrGrid, relaxed checks (size mismatches, untested codimensions, missing
level intersections) are collected as warnings.
*/
type Checker struct {
	// Out receives the detailed trace of the check, nothing is written when nil
	Out       io.Writer
	Tolerance float64
	// LevelIndex marks the view as a level view, its intersections are only
	// used with EnableLevelIntersectionCheck
	LevelIndex                   bool
	EnableLevelIntersectionCheck bool

	warnedLevelIntersection bool
}

type Report struct {
	Warnings []string
}

func (r *Report) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	klog.Warningf("%s", msg)
	r.Warnings = append(r.Warnings, msg)
}

// subEntityKey identifies a sub-entity, indices are unique per geometry type
type subEntityKey struct {
	index int
	gt    genericgeometry.GeometryType
}

func (k subEntityKey) String() string { return fmt.Sprintf("(%d,%s)", k.index, k.gt) }

func compareSubEntityKeys(a, b interface{}) int {
	ka, kb := a.(subEntityKey), b.(subEntityKey)
	if c := genericgeometry.CompareGeometryTypes(ka.gt, kb.gt); c != 0 {
		return c
	}
	return ka.index - kb.index
}

func compareGeometryTypes(a, b interface{}) int {
	return genericgeometry.CompareGeometryTypes(a.(genericgeometry.GeometryType), b.(genericgeometry.GeometryType))
}

// codimState holds the maps shared by all sub-entity checks of one codimension
type codimState struct {
	codim                     int
	dim                       int
	lset                      IndexSet
	setOfVerticesPerSubEntity *treemap.Map // subEntityKey -> types.VertexKey
	subEntityPerSetOfVertices *treemap.Map // types.VertexKey -> subEntityKey
	vertexCoords              *treemap.Map // int -> []float64
}

func (c *Checker) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

func (c *Checker) eps() float64 {
	if c.Tolerance > 0 {
		return c.Tolerance
	}
	return DefaultTolerance
}

// CheckIndexSet checks all codimensions from the vertices down to the
// elements, codimensions the view does not provide are skipped with a warning
func (c *Checker) CheckIndexSet(view GridView) (rep *Report, err error) {
	rep = &Report{}
	caps, hasCaps := view.(CodimCapabilities)
	for codim := view.Dimension(); codim >= 0; codim-- {
		if hasCaps && !caps.HasEntities(codim) {
			rep.warnf("entities for codim %d are not being tested", codim)
			continue
		}
		if err = c.checkIndexSetForCodim(view, codim, rep); err != nil {
			return
		}
	}
	return
}

func (c *Checker) CheckIndexSetForCodim(view GridView, codim int) (rep *Report, err error) {
	rep = &Report{}
	err = c.checkIndexSetForCodim(view, codim, rep)
	return
}

func (c *Checker) checkIndexSetForCodim(view GridView, codim int, rep *Report) (err error) {
	var (
		w    = c.out()
		dim  = view.Dimension()
		lset = view.IndexSet()
	)
	if codim < 0 || codim > dim {
		return errors.Errorf("codim %d out of range for dimension %d", codim, dim)
	}
	fmt.Fprintf(w, "\n\nStart consistency check of index set\n\n")

	// Geometry types present in the view against the advertised ones
	it := view.Begin(codim)
	if !it.Next() {
		return
	}
	present := treeset.NewWith(compareGeometryTypes)
	gridsize := 0
	for ok := true; ok; ok = it.Next() {
		present.Add(it.Entity().Type())
		gridsize++
	}
	advertised := treeset.NewWith(compareGeometryTypes)
	for _, gt := range lset.GeomTypes(codim) {
		advertised.Add(gt)
	}
	if present.Size() != advertised.Size() || !present.Contains(advertised.Values()...) {
		return gridError("mismatch in the geometry types of codim %d: present %v, geomTypes returned %v",
			codim, present.Values(), advertised.Values())
	}

	if lsetsize := lset.Size(codim); gridsize != lsetsize {
		rep.warnf("walk = %d entities | set = %d for codim %d", gridsize, lsetsize, codim)
	}

	// Every element is contained, count distinct sub-entities by local id
	var ids LocalIDSet
	if p, ok := view.(IDProvider); ok {
		ids = p.LocalIDSet()
	}
	found := treeset.NewWith(utils.UInt64Comparator)
	for it := view.Begin(0); it.Next(); {
		e := it.Entity()
		if !lset.Contains(e) {
			return gridError("index set does not contain all entities")
		}
		if ids == nil {
			continue
		}
		for i := 0; i < e.Count(codim); i++ {
			found.Add(ids.ID(e.SubEntity(codim, i)))
		}
	}
	if ids != nil && gridsize != found.Size() {
		rep.warnf("gridsize = %d entities, set of entities = %d [codim %d]", gridsize, found.Size(), codim)
	}

	st := &codimState{
		codim:                     codim,
		dim:                       dim,
		lset:                      lset,
		setOfVerticesPerSubEntity: treemap.NewWith(compareSubEntityKeys),
		subEntityPerSetOfVertices: treemap.NewWith(types.CompareVertexKeys),
		vertexCoords:              treemap.NewWith(utils.IntComparator),
	}
	if err = c.collectVertices(view, st, rep); err != nil {
		return
	}

	// Reference element of the first element
	first := view.Begin(0)
	if !first.Next() {
		return gridError("no elements to choose a reference element from")
	}
	re, err := genericgeometry.ReferenceElementForType(first.Entity().Type())
	if err != nil {
		return gridError("%v", err)
	}
	fmt.Fprintf(w, "Dune reference element provides:\n")
	for i := 0; i < re.Size(codim); i++ {
		verts := make([]int, re.SizeOf(i, codim, dim))
		for j := range verts {
			verts[j] = re.SubEntity(i, codim, j, dim)
		}
		fmt.Fprintf(w, "%d subEntity %v\n", i, verts)
	}

	for it := view.Begin(0); it.Next(); {
		e := it.Entity()
		if err = c.checkElementVertices(e, st); err != nil {
			return
		}
		if err = c.checkSubEntity(e, st); err != nil {
			return
		}
		if codim != 1 {
			continue
		}
		if c.LevelIndex && !c.EnableLevelIntersectionCheck {
			if !c.warnedLevelIntersection {
				c.warnedLevelIntersection = true
				rep.warnf("skipping index test using level intersections")
			}
			continue
		}
		var nbs []Entity
		if nbs, err = view.Neighbors(e); err != nil {
			if errors.Cause(err) != ErrNotSupported {
				return
			}
			err = nil
			if !c.warnedLevelIntersection {
				c.warnedLevelIntersection = true
				rep.warnf("skipping index test across intersections, %v", ErrNotSupported)
			}
			continue
		}
		for _, nb := range nbs {
			if err = c.checkSubEntity(nb, st); err != nil {
				return
			}
		}
	}
	return
}

// collectVertices stores the coordinates of every vertex by index
func (c *Checker) collectVertices(view GridView, st *codimState, rep *Report) (err error) {
	var (
		w     = c.out()
		count = 0
	)
	for it := view.Begin(st.dim); it.Next(); {
		e := it.Entity()
		count++
		vx := e.Corner(0)
		if !st.lset.Contains(e) {
			return gridError("index set does not contain vertex %v", vx)
		}
		idx := st.lset.Index(e)
		fmt.Fprintf(w, "Vertex %d = %v\n", idx, vx)
		if _, ok := st.vertexCoords.Get(idx); !ok {
			st.vertexCoords.Put(idx, vx)
		}
	}
	fmt.Fprintf(w, "Found %d vertices for that index set!\n\n", st.vertexCoords.Size())
	if st.vertexCoords.Size() != count {
		return gridError("%d vertices share %d indices", count, st.vertexCoords.Size())
	}
	nv := st.lset.SizeOfType(genericgeometry.Vertex)
	fmt.Fprintf(w, "Checking size of vertices %d equals all found vertices %d\n", count, nv)
	if count != nv {
		rep.warnf("iterated %d vertices, index set holds %d", count, nv)
	}
	return
}

// checkElementVertices compares the vertex sub-entities of e with the
// vertex coordinates collected by index
func (c *Checker) checkElementVertices(e Entity, st *codimState) (err error) {
	var (
		w   = c.out()
		svx = e.Count(st.dim)
	)
	fmt.Fprintf(w, "****************************************\n")
	fmt.Fprintf(w, "Element = %d on level %d\n", st.lset.Index(e), e.Level())
	idx := make([]int, svx)
	for i := range idx {
		idx[i] = st.lset.SubIndex(e, i, st.dim)
	}
	fmt.Fprintf(w, "Vertices      = %v\n", idx)
	for i := 0; i < svx; i++ {
		vxp := e.SubEntity(st.dim, i)
		vx := vxp.Corner(0)
		fmt.Fprintf(w, "Vertex Coords [%d] = %v\n", i, vx)
		if idx[i] != st.lset.Index(vxp) {
			return gridError("index(subEntity(%d, dim)) = %d != subIndex(entity, %d, dim) = %d",
				i, st.lset.Index(vxp), i, idx[i])
		}
		check, ok := st.vertexCoords.Get(idx[i])
		if !ok {
			return gridError("vertex %d of element %d was not iterated", idx[i], st.lset.Index(e))
		}
		if !CompareVec(check.([]float64), vx, c.eps()) {
			return gridError("inconsistent map of global vertex %d: %v != %v", idx[i], check, vx)
		}
	}
	return
}

// CheckSubEntity checks the codim sub-entities of e against the reference
// element, using fresh maps
func (c *Checker) CheckSubEntity(view GridView, e Entity, codim int) (err error) {
	st := &codimState{
		codim:                     codim,
		dim:                       view.Dimension(),
		lset:                      view.IndexSet(),
		setOfVerticesPerSubEntity: treemap.NewWith(compareSubEntityKeys),
		subEntityPerSetOfVertices: treemap.NewWith(types.CompareVertexKeys),
		vertexCoords:              treemap.NewWith(utils.IntComparator),
	}
	return c.checkSubEntity(e, st)
}

func (c *Checker) checkSubEntity(en Entity, st *codimState) (err error) {
	var (
		w     = c.out()
		codim = st.codim
		dim   = st.dim
		lset  = st.lset
	)
	re, err := genericgeometry.ReferenceElementForType(en.Type())
	if err != nil {
		return gridError("%v", err)
	}
	if en.Count(codim) != re.Size(codim) {
		return gridError("entity %d of type %s has %d sub-entities of codim %d, reference element has %d",
			lset.Index(en), en.Type(), en.Count(codim), codim, re.Size(codim))
	}
	for s := 0; s < re.Size(codim); s++ {
		numVertices := re.SizeOf(s, codim, dim)
		local := make([]int, numVertices)
		global := make([]int, numVertices)
		for j := range local {
			local[j] = re.SubEntity(s, codim, j, dim)
			global[j] = lset.SubIndex(en, local[j], dim)
		}
		fmt.Fprintf(w, "%d vertices on subEntity< codim = %d >\n", numVertices, codim)
		fmt.Fprintf(w, "check subentity %v\n", local)
		fmt.Fprintf(w, "Found global numbers of entity %v\n", global)

		sub := en.SubEntity(codim, s)
		if lset.SubIndex(en, s, codim) != lset.Index(sub) {
			return gridError("subIndex(entity, %d, %d) = %d does not match index of sub-entity %d",
				s, codim, lset.SubIndex(en, s, codim), lset.Index(sub))
		}
		key := subEntityKey{index: lset.Index(sub), gt: sub.Type()}
		if key.index < 0 {
			return gridError("negative index %d for sub-entity %d of codim %d", key.index, s, codim)
		}
		fmt.Fprintf(w, "local subentity %d consider subentity with global key %s on en = %d\n",
			s, key, lset.Index(en))
		if sub.Type() != re.Type(s, codim) {
			return gridError("sub-entity %d of codim %d has type %s, reference element has %s",
				s, codim, sub.Type(), re.Type(s, codim))
		}
		if sub.Level() != en.Level() {
			return gridError("sub-entity on level %d of entity on level %d", sub.Level(), en.Level())
		}
		if sub.Corners() != numVertices {
			return gridError("sub-entity %s has %d corners, want %d", key, sub.Corners(), numVertices)
		}
		for j := 0; j < numVertices; j++ {
			check, ok := st.vertexCoords.Get(global[j])
			if ok {
				vx1 := en.SubEntity(dim, local[j]).Corner(0)
				if !CompareVec(check.([]float64), vx1, c.eps()) {
					return gridError("map global vertex [%d] vx %v is not %v", global[j], check, vx1)
				}
				// corner order of the sub-entity geometry must follow the element's local view
				vx2 := sub.Corner(j)
				if !CompareVec(check.([]float64), vx2, c.eps()) {
					return gridError("corner %d of sub-entity %s: global vertex [%d] vx %v is not %v",
						j, key, global[j], check, vx2)
				}
			}
			fmt.Fprintf(w, "vx[%d] = %v\n", global[j], sub.Corner(j))
		}

		sort.Ints(global)
		vk := types.NewVertexKey(global)
		if stored, ok := st.subEntityPerSetOfVertices.Get(vk); !ok {
			st.subEntityPerSetOfVertices.Put(vk, key)
		} else if stored.(subEntityKey) != key {
			return gridError("vertices %s belong to sub-entity %s and %s", vk, stored, key)
		}
		if stored, ok := st.setOfVerticesPerSubEntity.Get(key); !ok {
			st.setOfVerticesPerSubEntity.Put(key, vk)
		} else if stored.(types.VertexKey) != vk {
			return gridError("for subEntity key %s got %s, found %s", key, vk, stored)
		}
		klog.V(2).Infof("codim %d sub-entity %s spans %v", codim, key, global)
	}
	fmt.Fprintf(w, "end check sub entities\n")
	return
}
