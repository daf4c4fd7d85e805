// Package connected keeps reverse relationship collections in sync with the
// plain fields that reference their owners.
//
// A connected type declares collection fields such as "every Wheel pointing
// at me". Whenever a Wheel assigns a Car to one of its fields, the Wheel
// joins the matching collection of that Car and leaves the collection of the
// Car it pointed at before:
//
//	u := connected.NewUniverse()
//	wheelType := u.Declare("garage.Wheel").MustRegister()
//	carType := u.Declare("garage.Car").Collection("wheels", wheelType).MustRegister()
//
//	car, _ := connected.New[Car](carType)
//	wheel, _ := connected.New[Wheel](wheelType)
//	_ = wheel.Set("car", car) // car's "wheels" collection now holds wheel
//
// # Identities
//
// Each collection field is bound to an Identity: the element type name,
// optionally qualified with the name of the element's field that must point
// at the owner. When an instance writes field f, every referenced instance is
// searched, for each type T of the writer's linearization (most specific
// first), for the identity T:f and then T. The first collection found is the
// only one changed.
//
// # Declarations
//
// Types are registered explicitly in a Universe. Element types are given as
// another *Type, Named, GoType or Any. A name that cannot be resolved when the
// schema is resolved is a forward reference and yields a *ConfigurationError;
// resolution is retried until it succeeds and the result is cached.
//
// # Concurrency
//
// Instances are not safe for concurrent mutation. Registration in a Universe
// is.
package connected
