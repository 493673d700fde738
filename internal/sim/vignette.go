package sim

// VignetteContext describes where a vignette makes sense.
type VignetteContext uint8

const (
	ContextAny   VignetteContext = iota // fits anywhere
	ContextPark                         // open lawn
	ContextAlley                        // tile touching a wall
	ContextPath                         // streets, dirt and everything else
)

func (c VignetteContext) String() string {
	switch c {
	case ContextPark:
		return "park"
	case ContextAlley:
		return "alley"
	case ContextPath:
		return "path"
	default:
		return "any"
	}
}

// matches reports whether a template with filter c may stamp on a tile of ctx.
func (c VignetteContext) matches(ctx VignetteContext) bool {
	return c == ContextAny || c == ctx
}

// VignetteCategory is the narrative role of a vignette.
type VignetteCategory uint8

const (
	VignetteCrime VignetteCategory = iota
	VignetteHerring
	VignetteAmbiance
)

func (c VignetteCategory) String() string {
	switch c {
	case VignetteCrime:
		return "crime"
	case VignetteHerring:
		return "herring"
	default:
		return "ambiance"
	}
}

// quality is the default evidence tag of items in a vignette of this category.
func (c VignetteCategory) quality() Quality {
	switch c {
	case VignetteCrime:
		return QualityCrime
	case VignetteHerring:
		return QualityHerring
	default:
		return QualityAmbiance
	}
}

// VignetteItem is one decal inside a template, offset from the anchor tile centre.
type VignetteItem struct {
	DX, DY  float64
	Visual  string
	Quality Quality // QualityNone = inherit from the category
}

// VignetteDef is a reusable clue cluster.
type VignetteDef struct {
	Name     string
	Context  VignetteContext
	Category VignetteCategory
	Items    []VignetteItem
}

// vignetteLibrary is read-only; Populate copies items into new decals.
var vignetteLibrary = []VignetteDef{
	// Crime scenes.
	{
		Name: "struggle_marks", Context: ContextAlley, Category: VignetteCrime,
		Items: []VignetteItem{
			{DX: -6, DY: 2, Visual: "clue_blood_smear"},
			{DX: 7, DY: -5, Visual: "clue_torn_fabric"},
			{DX: 1, DY: 9, Visual: "amb_scuff", Quality: QualityAmbiance},
		},
	},
	{
		Name: "dropped_weapon", Context: ContextAny, Category: VignetteCrime,
		Items: []VignetteItem{
			{DX: 0, DY: 0, Visual: "clue_knife"},
		},
	},
	{
		Name: "muddy_prints", Context: ContextPath, Category: VignetteCrime,
		Items: []VignetteItem{
			{DX: -9, DY: 6, Visual: "clue_footprint"},
			{DX: 0, DY: 0, Visual: "clue_footprint"},
			{DX: 9, DY: -6, Visual: "clue_footprint"},
		},
	},
	{
		Name: "hidden_glove", Context: ContextPark, Category: VignetteCrime,
		Items: []VignetteItem{
			{DX: 3, DY: -2, Visual: "clue_glove"},
			{DX: -5, DY: 6, Visual: "amb_flattened_grass", Quality: QualityAmbiance},
		},
	},

	// Red herrings.
	{
		Name: "ketchup_spill", Context: ContextPark, Category: VignetteHerring,
		Items: []VignetteItem{
			{DX: 0, DY: 0, Visual: "herring_ketchup"},
			{DX: 8, DY: 4, Visual: "amb_napkin", Quality: QualityAmbiance},
		},
	},
	{
		Name: "lost_umbrella", Context: ContextAny, Category: VignetteHerring,
		Items: []VignetteItem{
			{DX: 2, DY: 1, Visual: "herring_umbrella"},
		},
	},
	{
		Name: "paint_tin", Context: ContextAlley, Category: VignetteHerring,
		Items: []VignetteItem{
			{DX: -4, DY: 0, Visual: "herring_red_paint"},
			{DX: 6, DY: 3, Visual: "herring_brush"},
		},
	},

	// Ambiance.
	{
		Name: "fallen_leaves", Context: ContextPark, Category: VignetteAmbiance,
		Items: []VignetteItem{
			{DX: -7, DY: -3, Visual: "amb_leaves"},
			{DX: 5, DY: 6, Visual: "amb_leaves"},
		},
	},
	{
		Name: "litter", Context: ContextPath, Category: VignetteAmbiance,
		Items: []VignetteItem{
			{DX: 0, DY: 0, Visual: "amb_can"},
			{DX: 6, DY: -4, Visual: "amb_wrapper"},
		},
	},
	{
		Name: "bin_bags", Context: ContextAlley, Category: VignetteAmbiance,
		Items: []VignetteItem{
			{DX: -3, DY: -3, Visual: "amb_bin_bag"},
			{DX: 5, DY: 2, Visual: "amb_bin_bag"},
		},
	},
	{
		Name: "pigeons", Context: ContextAny, Category: VignetteAmbiance,
		Items: []VignetteItem{
			{DX: -4, DY: 2, Visual: "amb_pigeon"},
			{DX: 4, DY: -1, Visual: "amb_pigeon"},
		},
	},
}

// vignettesFor returns the templates of category cat usable in context ctx.
func vignettesFor(cat VignetteCategory, ctx VignetteContext) []*VignetteDef {
	var out []*VignetteDef
	for i := range vignetteLibrary {
		v := &vignetteLibrary[i]
		if v.Category == cat && v.Context.matches(ctx) {
			out = append(out, v)
		}
	}
	return out
}

// classifyTile returns the vignette context of a walkable tile.
func classifyTile(tm *TileMap, col, row int) VignetteContext {
	switch {
	case tm.adjacentTo(col, row, TileWall):
		return ContextAlley
	case tm.Kind(col, row) == TileGrass:
		return ContextPark
	default:
		return ContextPath
	}
}
