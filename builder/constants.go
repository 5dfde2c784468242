// Package builder defines shared constants used by the crystal and pool
// builders, keeping geometry and wiring defaults in one place.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodStar is the canonical name for the Star constructor.
	MethodStar = "Star"
	// MethodNearestNeighbors is the canonical name for the NearestNeighbors constructor.
	MethodNearestNeighbors = "NearestNeighbors"
	// MethodContacts is the canonical name for the Contacts constructor.
	MethodContacts = "Contacts"
	// MethodFluidMesh is the canonical name for the FluidMesh constructor.
	MethodFluidMesh = "FluidMesh"
	// MethodCrystal is the canonical name for the Crystal builder.
	MethodCrystal = "Crystal"
	// MethodAssemblePool is the canonical name for the AssemblePool builder.
	MethodAssemblePool = "AssemblePool"
)

//-----------------------------------------------------------------------------
// Layer names
//-----------------------------------------------------------------------------

const (
	// LayerCenter names the single hub vertex at the origin.
	LayerCenter = "center"
	// LayerTriad names the equilateral triangle (K ≥ 3 only).
	LayerTriad = "triad"
	// LayerIcosa names the 12 icosahedron vertices.
	LayerIcosa = "icosa"
	// shellLayerPrefix prefixes outer shells: "shell_4", "shell_5", ….
	shellLayerPrefix = "shell_"
)

// CenterVertex is the index of the crystal hub.
const CenterVertex = 0

//-----------------------------------------------------------------------------
// Crystal geometry
//-----------------------------------------------------------------------------

// MinCrystalLayers is the smallest crystal: center + icosahedron.
const MinCrystalLayers = 2

const (
	triadRadius       = 0.3  // radius of the triad triangle
	icosaRadius       = 0.6  // radius of the icosahedron shell
	firstShellRadius  = 0.85 // radius of shell_4
	shellRadiusStep   = 0.15 // radial spacing between successive shells
	icosaVertexCount  = 12   // vertices of a regular icosahedron
	shellGrowthFactor = 3    // each shell is 3× the previous one
	firstShellIndex   = 4    // layer number of the first outer shell
)

// DefaultNearestNeighbors is the number of geometric neighbors wired per
// non-center crystal vertex.
const DefaultNearestNeighbors = 6

//-----------------------------------------------------------------------------
// Pool wiring defaults
//-----------------------------------------------------------------------------

// DefaultContactFraction is the share of the pool size used as the number of
// seed contacts per pool oscillator: max(1, round(0.1 × pool)).
const DefaultContactFraction = 0.1

// DefaultMeshFactor is the number of random pool-pool edge draws per pool
// oscillator: 2 × pool draws in total.
const DefaultMeshFactor = 2

// MinContacts is the lower clamp for seed contacts per pool oscillator.
const MinContacts = 1
