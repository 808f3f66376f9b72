package scene

// Local marks node-relative coordinates, as authored.
type Local struct{}

// Global marks world coordinates. Global geometry only ever comes out of
// Flatten and is the only geometry the tracer accepts.
type Global struct{}

// Space is the set of coordinate space markers. Nodes, polygons and particles
// are parameterized by their space so that Local and Global data can not be
// mixed without going through Flatten.
type Space interface {
	Local | Global
}

type (
	LocalNode      = Node[Local]
	GlobalNode     = Node[Global]
	LocalPolygon   = Polygon[Local]
	GlobalPolygon  = Polygon[Global]
	LocalParticle  = Particle[Local]
	GlobalParticle = Particle[Global]
)
