package connected_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"connected-collections/connected"
)

type Car struct {
	connected.Object
}

type Wheel struct {
	connected.Object
}

type Bolt struct {
	connected.Object
}

// garage is a small universe:
//
//	Part
//	Wheel extends Part
//	Bolt  extends Part
//	Car   wheels: Wheel, spares: Wheel:spare, parts: Part
type garage struct {
	u     *connected.Universe
	part  *connected.Type
	wheel *connected.Type
	bolt  *connected.Type
	car   *connected.Type
}

func newGarage(t *testing.T, opts ...connected.Option) garage {
	t.Helper()

	u := connected.NewUniverse(opts...)

	part, err := u.Declare("garage.Part").Register()
	require.NoError(t, err)

	wheel, err := u.Declare("garage.Wheel").Extends(part).Bind(reflect.TypeFor[Wheel]()).Register()
	require.NoError(t, err)

	bolt, err := u.Declare("garage.Bolt").Extends(part).Bind(reflect.TypeFor[Bolt]()).Register()
	require.NoError(t, err)

	car, err := u.Declare("garage.Car").
		Bind(reflect.TypeFor[Car]()).
		Collection("wheels", wheel).
		Collection("spares", wheel, "spare").
		Collection("parts", part).
		Register()
	require.NoError(t, err)

	return garage{u: u, part: part, wheel: wheel, bolt: bolt, car: car}
}

func (g garage) newCar(t *testing.T) *Car {
	t.Helper()

	c, err := connected.New[Car](g.car)
	require.NoError(t, err)

	return c
}

func (g garage) newWheel(t *testing.T) *Wheel {
	t.Helper()

	w, err := connected.New[Wheel](g.wheel)
	require.NoError(t, err)

	return w
}

func (g garage) newBolt(t *testing.T) *Bolt {
	t.Helper()

	b, err := connected.New[Bolt](g.bolt)
	require.NoError(t, err)

	return b
}

func members(t *testing.T, inst connected.Instance, field string) []connected.Instance {
	t.Helper()

	v, err := connected.Value[*connected.Collection](inst, field)
	require.NoError(t, err)

	return v.Members()
}
