package layer

// LayerKind names one of the three layer kinds a LayeredMap can own.
type LayerKind string

const (
	KindTSDF      LayerKind = "tsdf"
	KindESDF      LayerKind = "esdf"
	KindOccupancy LayerKind = "occupancy"
)

// LayeredMap owns up to one layer of each kind (§4.L). It has no update or
// query methods of its own: callers fetch a layer with RequireTSDF,
// RequireESDF or RequireOccupancy, which return InvalidFormatError for an
// absent layer, and call that layer directly.
type LayeredMap struct {
	tsdf      *TSDFLayer
	esdf      *ESDFLayer
	occupancy *OccupancyLayer
}

// NewLayeredMap returns an empty LayeredMap with no layers attached.
func NewLayeredMap() *LayeredMap { return &LayeredMap{} }

// AddTSDF attaches a TSDF layer, replacing any existing one.
func (m *LayeredMap) AddTSDF(l *TSDFLayer) { m.tsdf = l }

// AddESDF attaches an ESDF layer, replacing any existing one.
func (m *LayeredMap) AddESDF(l *ESDFLayer) { m.esdf = l }

// AddOccupancy attaches an occupancy layer, replacing any existing one.
func (m *LayeredMap) AddOccupancy(l *OccupancyLayer) { m.occupancy = l }

// TSDF returns the attached TSDF layer, or nil if none is attached.
func (m *LayeredMap) TSDF() *TSDFLayer { return m.tsdf }

// ESDF returns the attached ESDF layer, or nil if none is attached.
func (m *LayeredMap) ESDF() *ESDFLayer { return m.esdf }

// Occupancy returns the attached occupancy layer, or nil if none is
// attached.
func (m *LayeredMap) Occupancy() *OccupancyLayer { return m.occupancy }

// HasLayer reports whether kind is currently attached.
func (m *LayeredMap) HasLayer(kind LayerKind) bool {
	switch kind {
	case KindTSDF:
		return m.tsdf != nil
	case KindESDF:
		return m.esdf != nil
	case KindOccupancy:
		return m.occupancy != nil
	default:
		return false
	}
}

// LayerTypes returns the kinds currently attached, in a fixed TSDF/ESDF/
// Occupancy order.
func (m *LayeredMap) LayerTypes() []LayerKind {
	var out []LayerKind
	if m.tsdf != nil {
		out = append(out, KindTSDF)
	}
	if m.esdf != nil {
		out = append(out, KindESDF)
	}
	if m.occupancy != nil {
		out = append(out, KindOccupancy)
	}
	return out
}

// TotalVoxels sums VoxelCount across every attached layer.
func (m *LayeredMap) TotalVoxels() int {
	var total int
	if m.tsdf != nil {
		total += m.tsdf.VoxelCount()
	}
	if m.esdf != nil {
		total += m.esdf.VoxelCount()
	}
	if m.occupancy != nil {
		total += m.occupancy.VoxelCount()
	}
	return total
}

// TotalMemoryUsage sums MemoryUsage across every attached layer.
func (m *LayeredMap) TotalMemoryUsage() int {
	var total int
	if m.tsdf != nil {
		total += m.tsdf.MemoryUsage()
	}
	if m.esdf != nil {
		total += m.esdf.MemoryUsage()
	}
	if m.occupancy != nil {
		total += m.occupancy.MemoryUsage()
	}
	return total
}

// Clear empties every attached layer, leaving them attached.
func (m *LayeredMap) Clear() {
	if m.tsdf != nil {
		m.tsdf.Clear()
	}
	if m.esdf != nil {
		m.esdf.Clear()
	}
	if m.occupancy != nil {
		m.occupancy.Clear()
	}
}

// RequireTSDF returns the attached TSDF layer or InvalidFormatError.
func (m *LayeredMap) RequireTSDF() (*TSDFLayer, error) {
	if m.tsdf == nil {
		return nil, &InvalidFormatError{Kind: string(KindTSDF)}
	}
	return m.tsdf, nil
}

// RequireESDF returns the attached ESDF layer or InvalidFormatError.
func (m *LayeredMap) RequireESDF() (*ESDFLayer, error) {
	if m.esdf == nil {
		return nil, &InvalidFormatError{Kind: string(KindESDF)}
	}
	return m.esdf, nil
}

// RequireOccupancy returns the attached occupancy layer or
// InvalidFormatError.
func (m *LayeredMap) RequireOccupancy() (*OccupancyLayer, error) {
	if m.occupancy == nil {
		return nil, &InvalidFormatError{Kind: string(KindOccupancy)}
	}
	return m.occupancy, nil
}
