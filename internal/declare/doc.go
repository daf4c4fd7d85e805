// Package declare reads connected type declarations from YAML documents and
// registers them in a connected.Universe.
//
// A document lists types with their bases and collection fields:
//
//	version: "1"
//	types:
//	  - name: garage.Car
//	    extends: garage.Vehicle
//	    collections:
//	      - field: wheels
//	        of: garage.Wheel
//	      - field: spares
//	        of: garage.Wheel
//	        qualifier: spare
//	  - name: garage.Vehicle
//	  - name: garage.Wheel
//
// Types may be listed in any order. Bases are registered before the types
// extending them; element types that are declared later in the document are
// resolved once every type is registered.
package declare
