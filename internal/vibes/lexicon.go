package vibes

// Lexicon holds the keyword sets driving the vibe score. The defaults below
// are the editorial lists tuned for LA culture coverage; tests and alternate
// deployments can inject their own.
type Lexicon struct {
	Good    []string
	Blocked []string
}

// Area groups neighborhood name variants under one region of the city.
// Declaration order is the tie-break: when a text mentions several
// neighborhoods, the first area and first variant declared here wins.
type Area struct {
	Name     string
	Variants []string
}

// DefaultLexicon returns the built-in good-vibes and blocked keyword lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Good: []string{
			// openings & launches
			"opening", "launch", "debut", "premiere", "unveiling", "grand opening",
			"soft opening", "ribbon cutting", "new", "introducing", "announcing",
			// community & celebration
			"community", "celebrate", "celebration", "festival", "party", "gathering",
			"reunion", "anniversary", "milestone", "achievement", "success", "winner",
			"award", "recognition", "honor", "tribute",
			// culture & arts
			"art", "artist", "exhibition", "gallery", "museum", "performance",
			"concert", "music", "theater", "dance", "creative", "culture",
			"mural", "installation", "sculpture", "painting",
			// food & dining
			"restaurant", "cafe", "coffee", "food", "chef", "menu", "dining",
			"brewery", "cocktail", "wine", "brunch", "farmers market", "food truck",
			"bakery", "dessert",
			// business & growth
			"expansion", "growth", "innovation", "collaboration", "partnership",
			"startup", "entrepreneur", "hiring", "opportunity",
			// positive descriptors
			"free", "family-friendly", "outdoor", "fun", "exciting", "amazing",
			"beautiful", "stunning", "incredible", "wonderful", "fantastic",
			"inspiring", "uplifting",
			// community improvement
			"renovation", "restoration", "improvement", "revitalization",
			"beautification", "transformation", "sustainability", "eco-friendly",
		},
		Blocked: []string{
			// crime & violence
			"murder", "shooting", "stabbing", "robbery", "theft", "burglary",
			"assault", "attack", "violence", "crime", "criminal", "arrest",
			"police", "investigation", "suspect", "victim", "death", "killed",
			"injured", "emergency",
			// politics
			"political", "politics", "election", "candidate", "voting", "ballot",
			"republican", "democrat", "city council", "mayor", "senator",
			"protest", "rally", "demonstration", "activism",
			// legal & financial trouble
			"lawsuit", "court", "trial", "settlement", "bankruptcy", "foreclosure",
			"eviction", "closure", "closing", "layoffs", "fired", "scandal",
			"fraud", "corruption",
			// conflict
			"controversy", "controversial", "outrage", "angry", "furious",
			"complaint", "criticism", "opposition", "conflict", "dispute",
			// decline
			"decline", "plummet", "crash", "failure", "struggling", "threat",
			"danger", "warning",
		},
	}
}

// DefaultNeighborhoods returns the LA gazetteer in its documented, stable
// order. Variant strings are lowercase; matching is substring based.
func DefaultNeighborhoods() []Area {
	return []Area{
		{Name: "downtown", Variants: []string{"downtown", "dtla", "downtown la", "downtown los angeles", "arts district", "little tokyo", "chinatown"}},
		{Name: "westside", Variants: []string{"westside", "santa monica", "venice", "brentwood", "west la", "west los angeles", "mar vista", "palms"}},
		{Name: "valley", Variants: []string{"valley", "san fernando valley", "studio city", "sherman oaks", "burbank", "north hollywood", "van nuys", "encino"}},
		{Name: "eastside", Variants: []string{"eastside", "silver lake", "echo park", "los feliz", "highland park", "eagle rock", "mount washington"}},
		{Name: "south bay", Variants: []string{"south bay", "manhattan beach", "hermosa beach", "redondo beach", "el segundo", "torrance"}},
		{Name: "hollywood", Variants: []string{"hollywood", "west hollywood", "weho", "hollywood hills", "sunset strip", "melrose"}},
		{Name: "mid city", Variants: []string{"mid city", "beverly hills", "fairfax", "miracle mile", "mid-wilshire", "koreatown", "pico-robertson"}},
		{Name: "pasadena", Variants: []string{"pasadena", "south pasadena", "altadena", "san marino", "alhambra"}},
		{Name: "beaches", Variants: []string{"manhattan beach", "hermosa beach", "redondo beach", "el segundo", "playa del rey"}},
	}
}
