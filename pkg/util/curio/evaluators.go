package curio

// The evaluator catalog. Every evaluator is a pure function over the scoped
// dataset: it fetches through the facade, folds the rows through one or two
// aggregation primitives, and either names a leader or returns nil when
// nothing clears the guards. Evaluators never write.

// Evaluator computes one statistic for one scope. A nil candidate with a nil
// error means no eligible leader (empty dataset or guard failure); an error
// means the fetch itself failed and the runner isolates it.
type Evaluator func(ds Datasource, scope Scope) (*Candidate, error)

// playedMatches fetches the scope's fixtures and keeps only those with a
// result, preserving the facade's chronological order
func playedMatches(ds Datasource, scope Scope) ([]*Match, error) {
	matches, err := ds.Matches(scope)
	if err != nil {
		return nil, err
	}
	var played []*Match
	for _, m := range matches {
		if m.HasBeenPlayed() {
			played = append(played, m)
		}
	}
	return played, nil
}

// matchIndex builds an id lookup over a match slice
func matchIndex(matches []*Match) map[int]*Match {
	idx := make(map[int]*Match, len(matches))
	for _, m := range matches {
		idx[m.ID] = m
	}
	return idx
}

// teamCandidate wraps a leader entry whose key is a team id
func teamCandidate(ds Datasource, entry LeaderEntry) *Candidate {
	return &Candidate{
		SubjectID:   entry.Key,
		SubjectName: ds.TeamName(entry.Key),
		SubjectKind: SubjectTeam,
		Value:       entry.Value,
	}
}

// playerCandidate wraps a leader entry whose key is a player id
func playerCandidate(ds Datasource, entry LeaderEntry) *Candidate {
	return &Candidate{
		SubjectID:   entry.Key,
		SubjectName: ds.PlayerName(entry.Key),
		SubjectKind: SubjectPlayer,
		Value:       entry.Value,
	}
}

// matchCandidate wraps a leader entry whose key is a match id
func matchCandidate(idx map[int]*Match, entry LeaderEntry) *Candidate {
	name := "Local - Visitante"
	if m, ok := idx[entry.Key]; ok {
		name = m.Label()
	}
	return &Candidate{
		SubjectID:   entry.Key,
		SubjectName: name,
		SubjectKind: SubjectMatch,
		Value:       entry.Value,
	}
}

/////////////////////////////////////////////////////////////////////////
////// Match-subject counts
/////////////////////////////////////////////////////////////////////////

// EvalMatchMostGoals finds the match with the highest combined score
func EvalMatchMostGoals(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}

	counter := NewCounter()
	for _, m := range matches {
		counter.Add(m.ID, m.TotalGoals())
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return matchCandidate(matchIndex(matches), leader), nil
}

// EvalMatchMostFouls finds the match with the most combined fouls
func EvalMatchMostFouls(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	stats, err := ds.TeamMatchStats(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	counter := NewCounter()
	for _, s := range stats {
		if _, played := idx[s.MatchID]; !played {
			continue
		}
		counter.Add(s.MatchID, s.Fouls)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return matchCandidate(idx, leader), nil
}

// EvalMatchMostRedCards finds the match with the most dismissals
func EvalMatchMostRedCards(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	cards, err := ds.RedCardEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	counter := NewCounter()
	for _, c := range cards {
		if _, played := idx[c.MatchID]; !played {
			continue
		}
		counter.Incr(c.MatchID)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return matchCandidate(idx, leader), nil
}

/////////////////////////////////////////////////////////////////////////
////// Team counts
/////////////////////////////////////////////////////////////////////////

// teamResultCount folds every played match into a counter via count.
// A leader stuck on zero is not a curiosity, no team gets crowned for it.
func teamResultCount(ds Datasource, scope Scope, count func(c *Counter, m *Match)) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}

	counter := NewCounter()
	for _, m := range matches {
		count(counter, m)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

// EvalTeamMostWins finds the team with the most wins
func EvalTeamMostWins(ds Datasource, scope Scope) (*Candidate, error) {
	return teamResultCount(ds, scope, func(c *Counter, m *Match) {
		// register both teams so a winless side still exists in the table
		c.Add(m.HomeID, 0)
		c.Add(m.AwayID, 0)
		if m.HomeGoals > m.AwayGoals {
			c.Incr(m.HomeID)
		} else if m.AwayGoals > m.HomeGoals {
			c.Incr(m.AwayID)
		}
	})
}

// EvalTeamMostDraws finds the team with the most draws
func EvalTeamMostDraws(ds Datasource, scope Scope) (*Candidate, error) {
	return teamResultCount(ds, scope, func(c *Counter, m *Match) {
		c.Add(m.HomeID, 0)
		c.Add(m.AwayID, 0)
		if m.HomeGoals == m.AwayGoals {
			c.Incr(m.HomeID)
			c.Incr(m.AwayID)
		}
	})
}

// EvalTeamMostLosses finds the team with the most defeats
func EvalTeamMostLosses(ds Datasource, scope Scope) (*Candidate, error) {
	return teamResultCount(ds, scope, func(c *Counter, m *Match) {
		c.Add(m.HomeID, 0)
		c.Add(m.AwayID, 0)
		if m.HomeGoals > m.AwayGoals {
			c.Incr(m.AwayID)
		} else if m.AwayGoals > m.HomeGoals {
			c.Incr(m.HomeID)
		}
	})
}

// EvalTeamMostGoals finds the team that scored the most in total
func EvalTeamMostGoals(ds Datasource, scope Scope) (*Candidate, error) {
	return teamResultCount(ds, scope, func(c *Counter, m *Match) {
		c.Add(m.HomeID, m.HomeGoals)
		c.Add(m.AwayID, m.AwayGoals)
	})
}

// EvalTeamMostConceded finds the team that let in the most in total
func EvalTeamMostConceded(ds Datasource, scope Scope) (*Candidate, error) {
	return teamResultCount(ds, scope, func(c *Counter, m *Match) {
		c.Add(m.HomeID, m.AwayGoals)
		c.Add(m.AwayID, m.HomeGoals)
	})
}

// EvalTeamOwnGoalBeneficiary finds the team gifted the most own goals.
// The benefit of an own goal goes to the opponent of the erring team.
func EvalTeamOwnGoalBeneficiary(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	goals, err := ds.GoalEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	counter := NewCounter()
	for _, g := range goals {
		if !g.IsOwnGoal() {
			continue
		}
		m, played := idx[g.MatchID]
		if !played {
			continue
		}
		beneficiary, err := g.BeneficiaryTeamID(m)
		if err != nil {
			continue
		}
		counter.Incr(beneficiary)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

/////////////////////////////////////////////////////////////////////////
////// Team ratios
/////////////////////////////////////////////////////////////////////////

// teamMatchRatio folds every played match into a ratio via add, then picks
// the maximum or minimum leader
func teamMatchRatio(ds Datasource, scope Scope, minSample float64, lowest bool, add func(r *Ratio, m *Match)) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}

	ratio := NewRatio(minSample)
	for _, m := range matches {
		add(ratio, m)
	}

	var leader LeaderEntry
	var ok bool
	if lowest {
		leader, ok = MinLeader(ratio.Entries())
	} else {
		leader, ok = MaxLeader(ratio.Entries())
	}
	if !ok {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

// EvalTeamAwayAttack finds the best travelling attack: away goals per away match
func EvalTeamAwayAttack(ds Datasource, scope Scope) (*Candidate, error) {
	return teamMatchRatio(ds, scope, float64(Config.MinMatchesSample), false, func(r *Ratio, m *Match) {
		r.Add(m.AwayID, float64(m.AwayGoals), 1)
	})
}

// EvalTeamHomeDefense finds the meanest home defense: goals conceded per home match, lowest wins
func EvalTeamHomeDefense(ds Datasource, scope Scope) (*Candidate, error) {
	return teamMatchRatio(ds, scope, float64(Config.MinMatchesSample), true, func(r *Ratio, m *Match) {
		r.Add(m.HomeID, float64(m.AwayGoals), 1)
	})
}

// EvalTeamEntertainment finds the team whose matches produce the most goals, for or against
func EvalTeamEntertainment(ds Datasource, scope Scope) (*Candidate, error) {
	return teamMatchRatio(ds, scope, float64(Config.MinMatchesSample), false, func(r *Ratio, m *Match) {
		total := float64(m.TotalGoals())
		r.Add(m.HomeID, total, 1)
		r.Add(m.AwayID, total, 1)
	})
}

// EvalTeamPointsPerGoal finds the team squeezing the most points out of each
// goal it scores. Guarded by total goals, not matches.
func EvalTeamPointsPerGoal(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}

	ratio := NewRatio(float64(Config.MinGoalsSample))
	for _, m := range matches {
		homePoints, awayPoints := 0.0, 0.0
		if m.HomeGoals > m.AwayGoals {
			homePoints = 3
		} else if m.AwayGoals > m.HomeGoals {
			awayPoints = 3
		} else {
			homePoints, awayPoints = 1, 1
		}
		ratio.Add(m.HomeID, homePoints, float64(m.HomeGoals))
		ratio.Add(m.AwayID, awayPoints, float64(m.AwayGoals))
	}

	leader, ok := MaxLeader(ratio.Entries())
	if !ok {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

// EvalTeamScoringConsistency finds the team that scores in the highest share
// of its matches
func EvalTeamScoringConsistency(ds Datasource, scope Scope) (*Candidate, error) {
	return teamMatchRatio(ds, scope, float64(Config.MinMatchesSample), false, func(r *Ratio, m *Match) {
		scoredHome, scoredAway := 0.0, 0.0
		if m.HomeGoals > 0 {
			scoredHome = 1
		}
		if m.AwayGoals > 0 {
			scoredAway = 1
		}
		r.Add(m.HomeID, scoredHome, 1)
		r.Add(m.AwayID, scoredAway, 1)
	})
}

// teamStatRatio folds the per-match stat rows of played matches into a ratio
func teamStatRatio(ds Datasource, scope Scope, minSample float64, lowest bool, add func(r *Ratio, s *TeamMatchStat)) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	stats, err := ds.TeamMatchStats(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	ratio := NewRatio(minSample)
	for _, s := range stats {
		if _, played := idx[s.MatchID]; !played {
			continue
		}
		add(ratio, s)
	}

	var leader LeaderEntry
	var ok bool
	if lowest {
		leader, ok = MinLeader(ratio.Entries())
	} else {
		leader, ok = MaxLeader(ratio.Entries())
	}
	if !ok {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

// EvalTeamPassCompletion finds the tidiest passing side. Sample guard is the
// pass count itself, so a team that barely plays the ball can't lead.
func EvalTeamPassCompletion(ds Datasource, scope Scope) (*Candidate, error) {
	return teamStatRatio(ds, scope, float64(Config.MinPassesSample), false, func(r *Ratio, s *TeamMatchStat) {
		r.Add(s.TeamID, float64(s.PassesCompleted), float64(s.Passes))
	})
}

// EvalTeamFairPlay finds the cleanest side: (fouls + weighted reds) per
// match, lowest score wins
func EvalTeamFairPlay(ds Datasource, scope Scope) (*Candidate, error) {
	weight := float64(GetRedCardFoulWeight())
	return teamStatRatio(ds, scope, float64(Config.MinMatchesSample), true, func(r *Ratio, s *TeamMatchStat) {
		r.Add(s.TeamID, float64(s.Fouls)+weight*float64(s.RedCards), 1)
	})
}

// EvalTeamDefensiveActions finds the hardest working defense: interceptions
// plus tackles per match
func EvalTeamDefensiveActions(ds Datasource, scope Scope) (*Candidate, error) {
	return teamStatRatio(ds, scope, float64(Config.MinMatchesSample), false, func(r *Ratio, s *TeamMatchStat) {
		r.Add(s.TeamID, float64(s.DefensiveActions()), 1)
	})
}

/////////////////////////////////////////////////////////////////////////
////// Streaks
/////////////////////////////////////////////////////////////////////////

// teamStreak runs the streak tracker over the scope's matches in
// chronological order. Unplayed matches are skipped entirely, they neither
// advance nor reset a run.
func teamStreak(ds Datasource, scope Scope, qualifies func(m *Match, teamID int) bool) (*Candidate, error) {
	matches, err := ds.Matches(scope)
	if err != nil {
		return nil, err
	}
	SortMatchesByDate(matches)

	tracker := NewStreakTracker()
	for _, m := range matches {
		if !m.HasBeenPlayed() {
			continue
		}
		tracker.Observe(m.HomeID, qualifies(m, m.HomeID))
		tracker.Observe(m.AwayID, qualifies(m, m.AwayID))
	}

	leader, ok := MaxLeader(tracker.Entries(GetMinStreakLength()))
	if !ok {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

// EvalTeamUnbeatenStreak finds the longest run without losing
func EvalTeamUnbeatenStreak(ds Datasource, scope Scope) (*Candidate, error) {
	return teamStreak(ds, scope, func(m *Match, teamID int) bool {
		return m.GoalsFor(teamID) >= m.GoalsAgainst(teamID)
	})
}

// EvalTeamScoringStreak finds the longest run of consecutive matches scoring
func EvalTeamScoringStreak(ds Datasource, scope Scope) (*Candidate, error) {
	return teamStreak(ds, scope, func(m *Match, teamID int) bool {
		return m.GoalsFor(teamID) >= 1
	})
}

// EvalTeamConcedingStreak finds the longest run of consecutive matches conceding
func EvalTeamConcedingStreak(ds Datasource, scope Scope) (*Candidate, error) {
	return teamStreak(ds, scope, func(m *Match, teamID int) bool {
		return m.GoalsAgainst(teamID) >= 1
	})
}

/////////////////////////////////////////////////////////////////////////
////// Distinct-target metrics
/////////////////////////////////////////////////////////////////////////

// EvalTeamDistinctVictims finds the team that has scored against the most
// different opponents
func EvalTeamDistinctVictims(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}

	tracker := NewSetTracker()
	for _, m := range matches {
		if m.HomeGoals > 0 {
			tracker.Add(m.HomeID, m.AwayID)
		}
		if m.AwayGoals > 0 {
			tracker.Add(m.AwayID, m.HomeID)
		}
	}

	leader, ok := MaxLeader(tracker.Entries())
	if !ok {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

// EvalTeamUniqueScorers finds the team with the most different goalscorers.
// Own goals never credit a scorer.
func EvalTeamUniqueScorers(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	goals, err := ds.GoalEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	tracker := NewSetTracker()
	for _, g := range goals {
		if g.IsOwnGoal() {
			continue
		}
		if _, played := idx[g.MatchID]; !played {
			continue
		}
		tracker.Add(g.TeamID, g.PlayerID)
	}

	leader, ok := MaxLeader(tracker.Entries())
	if !ok {
		return nil, nil
	}
	return teamCandidate(ds, leader), nil
}

/////////////////////////////////////////////////////////////////////////
////// Player metrics
/////////////////////////////////////////////////////////////////////////

// EvalPlayerTopScorer finds the leading scorer, own goals excluded
func EvalPlayerTopScorer(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	goals, err := ds.GoalEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	counter := NewCounter()
	for _, g := range goals {
		if g.IsOwnGoal() {
			continue
		}
		if _, played := idx[g.MatchID]; !played {
			continue
		}
		counter.Incr(g.PlayerID)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return playerCandidate(ds, leader), nil
}

// EvalPlayerMostRedCards finds the most dismissed player
func EvalPlayerMostRedCards(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	cards, err := ds.RedCardEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	counter := NewCounter()
	for _, c := range cards {
		if _, played := idx[c.MatchID]; !played {
			continue
		}
		counter.Incr(c.PlayerID)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return playerCandidate(ds, leader), nil
}

// EvalPlayerMostOwnGoals finds the unluckiest player
func EvalPlayerMostOwnGoals(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	goals, err := ds.GoalEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	counter := NewCounter()
	for _, g := range goals {
		if !g.IsOwnGoal() {
			continue
		}
		if _, played := idx[g.MatchID]; !played {
			continue
		}
		counter.Incr(g.PlayerID)
	}

	leader, ok := MaxLeader(counter.Entries())
	if !ok || leader.Value == 0 {
		return nil, nil
	}
	return playerCandidate(ds, leader), nil
}

// EvalPlayerDistinctVictims finds the player who has scored against the most
// different teams
func EvalPlayerDistinctVictims(ds Datasource, scope Scope) (*Candidate, error) {
	matches, err := playedMatches(ds, scope)
	if err != nil {
		return nil, err
	}
	goals, err := ds.GoalEvents(scope)
	if err != nil {
		return nil, err
	}

	idx := matchIndex(matches)
	tracker := NewSetTracker()
	for _, g := range goals {
		if g.IsOwnGoal() {
			continue
		}
		m, played := idx[g.MatchID]
		if !played || !m.Involves(g.TeamID) {
			continue
		}
		tracker.Add(g.PlayerID, m.OpponentOf(g.TeamID))
	}

	leader, ok := MaxLeader(tracker.Entries())
	if !ok {
		return nil, nil
	}
	return playerCandidate(ds, leader), nil
}
