package memo_test

import (
	"fmt"

	"github.com/canonkey/canonkey/memo"
	"github.com/canonkey/canonkey/sig"
	"github.com/canonkey/canonkey/strict"
)

// Mesh carries its cache slots in an embedded memo.Instance; no dynamic
// per-instance storage is needed.
type Mesh struct {
	memo.Instance
	Cells int
}

func ExampleNewType() {
	meshType, err := memo.NewType("Mesh", []string{"volume", "basis"}, map[string]any{
		"volume": memo.PropertyFunc(func(self any) (any, error) {
			m := self.(*Mesh)
			fmt.Println("computing volume")
			return float64(m.Cells) * 0.5, nil
		}),
		"basis": &memo.MethodDef{
			Sig: sig.MustSignature(
				sig.Arg("degree").WithCoercer(strict.Of[int64]()),
			),
			Fn: func(self any, args []any, kwargs map[string]any) (any, error) {
				fmt.Println("computing basis")
				return fmt.Sprintf("basis/p%d", args[0]), nil
			},
		},
	})
	if err != nil {
		panic(err)
	}

	mesh := &Mesh{Cells: 4}
	volume := meshType.MustAttr("volume")
	basis := meshType.MustAttr("basis")

	v, _ := volume.Get(&mesh.Instance, mesh)
	fmt.Println("volume:", v)
	v, _ = volume.Get(&mesh.Instance, mesh)
	fmt.Println("volume:", v)

	// Positional and keyword spellings of equal arguments share one entry.
	b, _ := basis.Call(&mesh.Instance, mesh, []any{2}, nil)
	fmt.Println("basis:", b)
	b, _ = basis.Call(&mesh.Instance, mesh, nil, map[string]any{"degree": int32(2)})
	fmt.Println("basis:", b)

	// Output:
	// computing volume
	// volume: 2
	// volume: 2
	// computing basis
	// basis: basis/p2
	// basis: basis/p2
}
