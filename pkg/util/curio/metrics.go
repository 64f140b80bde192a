package curio

// Metric is one entry of the catalog: the identity, presentation and
// evaluator of a single statistic. The catalog order is fixed and doubles
// as the output order of a run.
type Metric struct {
	// Kind is the stable identifier, part of the finding primary key
	Kind string
	// Title is the headline shown for a finding of this metric
	Title string
	// Category buckets the finding for presentation
	Category string
	// Template is the description with {nombre} and {valor} placeholders
	Template string
	// Percent scales the raw value by 100 before rounding and appends %
	Percent bool
	// Decimals is the number of decimal places kept in the stored value
	Decimals int
	// Evaluate computes the leader for a scope
	Evaluate Evaluator
}

var catalog = []*Metric{
	{
		Kind:     "match_most_goals",
		Title:    "El partido con más goles",
		Category: CategoryPartidos,
		Template: "El partido {nombre} ha sido el más goleador de la temporada con {valor} goles",
		Evaluate: EvalMatchMostGoals,
	},
	{
		Kind:     "match_most_fouls",
		Title:    "El partido con más faltas",
		Category: CategoryPartidos,
		Template: "El partido {nombre} ha sido el más duro de la temporada con {valor} faltas",
		Evaluate: EvalMatchMostFouls,
	},
	{
		Kind:     "match_most_red_cards",
		Title:    "El partido con más expulsiones",
		Category: CategoryPartidos,
		Template: "El partido {nombre} ha visto más tarjetas rojas que ningún otro, {valor} en total",
		Evaluate: EvalMatchMostRedCards,
	},
	{
		Kind:     "team_most_wins",
		Title:    "El equipo con más victorias",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo con más victorias de la temporada, {valor} en total",
		Evaluate: EvalTeamMostWins,
	},
	{
		Kind:     "team_most_draws",
		Title:    "El rey del empate",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo que más empata, ya acumula {valor} empates",
		Evaluate: EvalTeamMostDraws,
	},
	{
		Kind:     "team_most_losses",
		Title:    "El equipo con más derrotas",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo más derrotado de la temporada con {valor} derrotas",
		Evaluate: EvalTeamMostLosses,
	},
	{
		Kind:     "team_most_goals",
		Title:    "El máximo equipo goleador",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo más goleador de la temporada con {valor} goles",
		Evaluate: EvalTeamMostGoals,
	},
	{
		Kind:     "team_most_conceded",
		Title:    "La portería más batida",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo que más goles ha encajado, {valor} hasta la fecha",
		Evaluate: EvalTeamMostConceded,
	},
	{
		Kind:     "team_own_goal_beneficiary",
		Title:    "El equipo con más suerte",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo más beneficiado por goles en propia puerta, {valor} a su favor",
		Evaluate: EvalTeamOwnGoalBeneficiary,
	},
	{
		Kind:     "team_away_attack",
		Title:    "El mejor ataque a domicilio",
		Category: CategoryEstadisticas,
		Template: "{nombre} es el equipo que más marca fuera de casa, con una media de {valor} goles por partido",
		Decimals: 2,
		Evaluate: EvalTeamAwayAttack,
	},
	{
		Kind:     "team_home_defense",
		Title:    "La defensa más firme en casa",
		Category: CategoryEstadisticas,
		Template: "{nombre} es el equipo que menos encaja en su estadio, solo {valor} goles por partido",
		Decimals: 2,
		Evaluate: EvalTeamHomeDefense,
	},
	{
		Kind:     "team_entertainment",
		Title:    "El equipo más espectacular",
		Category: CategoryEstadisticas,
		Template: "Los partidos de {nombre} son los más entretenidos, con {valor} goles de media",
		Decimals: 2,
		Evaluate: EvalTeamEntertainment,
	},
	{
		Kind:     "team_pass_completion",
		Title:    "El toque más fino",
		Category: CategoryEstadisticas,
		Template: "{nombre} es el equipo con mejor porcentaje de pases completados, un {valor}",
		Percent:  true,
		Decimals: 1,
		Evaluate: EvalTeamPassCompletion,
	},
	{
		Kind:     "team_fair_play",
		Title:    "El equipo más deportivo",
		Category: CategoryEstadisticas,
		Template: "{nombre} es el equipo más limpio de la competición con un índice de {valor} por partido",
		Decimals: 2,
		Evaluate: EvalTeamFairPlay,
	},
	{
		Kind:     "team_defensive_actions",
		Title:    "La defensa más trabajadora",
		Category: CategoryEstadisticas,
		Template: "{nombre} es el equipo que más corta el juego rival, {valor} intervenciones por partido",
		Decimals: 2,
		Evaluate: EvalTeamDefensiveActions,
	},
	{
		Kind:     "team_points_per_goal",
		Title:    "El gol más rentable",
		Category: CategoryEstadisticas,
		Template: "{nombre} es el equipo que más rentabiliza sus goles, {valor} puntos por cada gol marcado",
		Decimals: 2,
		Evaluate: EvalTeamPointsPerGoal,
	},
	{
		Kind:     "team_scoring_consistency",
		Title:    "El equipo más constante cara a gol",
		Category: CategoryEstadisticas,
		Template: "{nombre} ha marcado en el {valor} de sus partidos esta temporada",
		Percent:  true,
		Decimals: 1,
		Evaluate: EvalTeamScoringConsistency,
	},
	{
		Kind:     "team_unbeaten_streak",
		Title:    "La racha de imbatibilidad",
		Category: CategoryEquipos,
		Template: "{nombre} acumula {valor} partidos seguidos sin perder",
		Evaluate: EvalTeamUnbeatenStreak,
	},
	{
		Kind:     "team_scoring_streak",
		Title:    "La racha goleadora",
		Category: CategoryEquipos,
		Template: "{nombre} lleva {valor} partidos consecutivos marcando",
		Evaluate: EvalTeamScoringStreak,
	},
	{
		Kind:     "team_conceding_streak",
		Title:    "La racha encajando",
		Category: CategoryEquipos,
		Template: "{nombre} lleva {valor} partidos seguidos encajando al menos un gol",
		Evaluate: EvalTeamConcedingStreak,
	},
	{
		Kind:     "team_distinct_victims",
		Title:    "El equipo que marca a cualquiera",
		Category: CategoryEquipos,
		Template: "{nombre} ya ha marcado a {valor} rivales distintos esta temporada",
		Evaluate: EvalTeamDistinctVictims,
	},
	{
		Kind:     "team_unique_scorers",
		Title:    "El gol más repartido",
		Category: CategoryEquipos,
		Template: "{nombre} es el equipo con más goleadores diferentes, {valor} jugadores han marcado",
		Evaluate: EvalTeamUniqueScorers,
	},
	{
		Kind:     "player_top_scorer",
		Title:    "El máximo goleador",
		Category: CategoryJugadores,
		Template: "{nombre} es el máximo goleador de la temporada con {valor} goles",
		Evaluate: EvalPlayerTopScorer,
	},
	{
		Kind:     "player_most_red_cards",
		Title:    "El jugador más expulsado",
		Category: CategoryJugadores,
		Template: "{nombre} es el jugador con más expulsiones, {valor} tarjetas rojas",
		Evaluate: EvalPlayerMostRedCards,
	},
	{
		Kind:     "player_most_own_goals",
		Title:    "El defensa con peor suerte",
		Category: CategoryJugadores,
		Template: "{nombre} es el jugador con más goles en propia puerta, {valor} en total",
		Evaluate: EvalPlayerMostOwnGoals,
	},
	{
		Kind:     "player_distinct_victims",
		Title:    "El goleador más repartidor",
		Category: CategoryJugadores,
		Template: "{nombre} ha marcado a {valor} equipos distintos esta temporada",
		Evaluate: EvalPlayerDistinctVictims,
	},
}

// Registry returns the metric catalog in its fixed order
func Registry() []*Metric {
	return catalog
}

// MetricByKind looks up a catalog entry by its identifier, nil if unknown
func MetricByKind(kind string) *Metric {
	for _, m := range catalog {
		if m.Kind == kind {
			return m
		}
	}
	return nil
}
