package curio

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/Xaaaaii7/lliga-sub001/internal/logger"
	"github.com/Xaaaaii7/lliga-sub001/pkg/transport"
	"github.com/Xaaaaii7/lliga-sub001/pkg/util"
)

// ResultsImporter pulls season results pages from the stats provider,
// caches the embedded JSON payload on disk and loads the parsed entities
// into the database
type ResultsImporter struct {
	BaseURL    string
	ResultsURL string
	Teams      []*Team
	Matches    []*Match
}

var (
	importerInstance *ResultsImporter
	importerOnce     sync.Once
)

// GetResultsImporter returns the singleton importer instance
func GetResultsImporter() *ResultsImporter {
	importerOnce.Do(func() {
		baseURL := "https://www.fotmob.com"
		importerInstance = &ResultsImporter{
			BaseURL:    baseURL,
			ResultsURL: fmt.Sprintf("%s/es/leagues", baseURL),
			Teams:      make([]*Team, 0),
			Matches:    make([]*Match, 0),
		}
	})
	return importerInstance
}

/////////////////////////////////////////////////////////////////////////
////// Persistence and Updating
/////////////////////////////////////////////////////////////////////////

// Update fetches the results page for the configured competition and
// season, then persists every entity it can parse out of the payload
func (imp *ResultsImporter) Update() error {
	if err := InitDatabase(Config.DbPath); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := os.MkdirAll(Config.CachePath, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	season := GetCurrentSeason()
	competitionID := Config.CompetitionID
	logger.Info("Importing results for competition", competitionID, "season", season)

	pageProps, err := imp.loadPageProps(competitionID, season)
	if err != nil {
		return err
	}

	matches, err := imp.extractMatches(pageProps)
	if err != nil {
		return fmt.Errorf("error extracting matches: %w", err)
	}
	for _, match := range matches {
		match.Season = season
		match.CompetitionID = competitionID
	}

	teams := teamsFromMatches(matches)
	players, goals, cards, stats := imp.extractMatchDetails(pageProps, matches)

	imp.Teams = teams
	imp.Matches = matches

	if err := SaveTeams(teams); err != nil {
		return fmt.Errorf("failed to save teams: %w", err)
	}
	if err := saveAll(matches, players, stats, goals, cards); err != nil {
		return err
	}

	logger.Info("Import complete:", len(matches), "matches,", len(teams), "teams,",
		len(goals), "goals,", len(cards), "red cards")
	return nil
}

// loadPageProps returns the cached payload for a competition and season, or
// fetches and caches it when missing
func (imp *ResultsImporter) loadPageProps(competitionID int, season string) (map[string]any, error) {
	safeSeason := strings.ReplaceAll(season, "/", "-")
	cacheFilename := fmt.Sprintf("%sresults-%d-%s.json", Config.CachePath, competitionID, safeSeason)

	if _, err := os.Stat(cacheFilename); err == nil {
		cacheData, err := os.ReadFile(cacheFilename)
		if err != nil {
			return nil, fmt.Errorf("error reading cache file, perhaps consider deleting cache files %s: %w", cacheFilename, err)
		}
		var pageProps map[string]any
		if ner := json.Unmarshal(cacheData, &pageProps); ner != nil {
			return nil, fmt.Errorf("error unmarshaling cache file %s: %w", cacheFilename, ner)
		}
		logger.Info("Loaded results from cache:", cacheFilename)
		return pageProps, nil
	}

	logger.Warn("competition/season not in cache:", competitionID, season)
	pageProps, err := imp.getResultsData(competitionID, season)
	if err != nil {
		return nil, fmt.Errorf("error fetching results data: %w", err)
	}

	cacheData, err := json.MarshalIndent(pageProps, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling pageProps to JSON: %w", err)
	}
	if err := os.WriteFile(cacheFilename, cacheData, 0644); err != nil {
		return nil, fmt.Errorf("error writing cache file %s: %w", cacheFilename, err)
	}
	return pageProps, nil
}

// saveAll persists the remaining entity slices in one transaction each
func saveAll(matches []*Match, players []*Player, stats []*TeamMatchStat, goals []*GoalEvent, cards []*RedCardEvent) error {
	batch := make([]Persistable, 0, len(matches))
	for _, m := range matches {
		batch = append(batch, m)
	}
	if err := BulkSave(batch); err != nil {
		return fmt.Errorf("failed to save matches: %w", err)
	}

	batch = batch[:0]
	for _, p := range players {
		batch = append(batch, p)
	}
	if err := BulkSave(batch); err != nil {
		return fmt.Errorf("failed to save players: %w", err)
	}

	batch = batch[:0]
	for _, s := range stats {
		batch = append(batch, s)
	}
	if err := BulkSave(batch); err != nil {
		return fmt.Errorf("failed to save team match stats: %w", err)
	}

	batch = batch[:0]
	for _, g := range goals {
		batch = append(batch, g)
	}
	if err := BulkSave(batch); err != nil {
		return fmt.Errorf("failed to save goal events: %w", err)
	}

	batch = batch[:0]
	for _, c := range cards {
		batch = append(batch, c)
	}
	if err := BulkSave(batch); err != nil {
		return fmt.Errorf("failed to save red card events: %w", err)
	}
	return nil
}

// teamsFromMatches builds team entities from the match fixtures, in first
// appearance order
func teamsFromMatches(matches []*Match) []*Team {
	var teams []*Team
	seen := make(map[int]bool)
	for _, m := range matches {
		if m.HomeID > 0 && !seen[m.HomeID] {
			seen[m.HomeID] = true
			teams = append(teams, &Team{ID: m.HomeID, Name: m.HomeTeamName})
		}
		if m.AwayID > 0 && !seen[m.AwayID] {
			seen[m.AwayID] = true
			teams = append(teams, &Team{ID: m.AwayID, Name: m.AwayTeamName})
		}
	}
	return teams
}

/////////////////////////////////////////////////////////////////////////
////// Transport and Parsing
/////////////////////////////////////////////////////////////////////////

// get performs an HTTP GET request to the specified URL
func (imp *ResultsImporter) get(url string) ([]byte, error) {
	logger.Info("HTTP get called for", url)
	return transport.GetHtml(url)
}

// getResultsData screen scrapes the results page for a competition and
// season. Does not cache, callers go through loadPageProps.
func (imp *ResultsImporter) getResultsData(competitionID int, season string) (map[string]any, error) {
	if competitionID <= 0 {
		return nil, fmt.Errorf("must supply a valid competitionID")
	}
	canonical, err := ParseSeason(season)
	if err != nil {
		return nil, err
	}
	first, err := GetFirstYear(canonical)
	if err != nil {
		return nil, err
	}
	second, err := GetSecondYear(canonical)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%d/matches?season=%d%%2F%d", imp.ResultsURL, competitionID, first, second)
	htmlContent, err := imp.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(htmlContent)))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	var scriptData string
	doc.Find("script#__NEXT_DATA__").Each(func(i int, s *goquery.Selection) {
		scriptData = s.Text()
	})
	if scriptData == "" {
		return nil, fmt.Errorf("could not find __NEXT_DATA__ script tag")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(scriptData), &data); err != nil {
		return nil, fmt.Errorf("error parsing JSON data: %w", err)
	}

	props, ok := data["props"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("could not find 'props' in data")
	}
	pageProps, ok := props["pageProps"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("could not find 'pageProps' in props")
	}
	return pageProps, nil
}

// extractMatches pulls the fixture list out of the payload. Unplayed
// fixtures keep their goal sentinels.
func (imp *ResultsImporter) extractMatches(pageProps map[string]any) ([]*Match, error) {
	var matches []*Match

	matchesData, ok := pageProps["matches"].(map[string]any)
	if !ok {
		return matches, nil
	}
	allMatchesData, ok := matchesData["allMatches"].([]any)
	if !ok {
		return matches, nil
	}

	for i, matchData := range allMatchesData {
		md, ok := matchData.(map[string]any)
		if !ok {
			continue
		}
		match, err := parseMatch(md)
		if err != nil {
			return nil, fmt.Errorf("error parsing match %d: %w", i, err)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// parseMatch converts one payload match entry into a Match
func parseMatch(md map[string]any) (*Match, error) {
	match := NewMatch()

	id, err := util.GetAsInteger(md["id"])
	if err != nil {
		return nil, fmt.Errorf("match has no usable id: %w", err)
	}
	match.ID = id

	if home, ok := md["home"].(map[string]any); ok {
		if tid, err := util.GetAsInteger(home["id"]); err == nil {
			match.HomeID = tid
		}
		if name, ok := home["name"].(string); ok {
			match.HomeTeamName = name
		}
	}
	if away, ok := md["away"].(map[string]any); ok {
		if tid, err := util.GetAsInteger(away["id"]); err == nil {
			match.AwayID = tid
		}
		if name, ok := away["name"].(string); ok {
			match.AwayTeamName = name
		}
	}

	if status, ok := md["status"].(map[string]any); ok {
		if utcTime, ok := status["utcTime"].(string); ok {
			if kickoff, err := time.Parse(time.RFC3339, utcTime); err == nil {
				match.MatchDate = kickoff
			}
		}
		finished, _ := status["finished"].(bool)
		if finished {
			if scoreStr, ok := status["scoreStr"].(string); ok {
				parseScore(match, scoreStr)
			}
		}
	}
	return match, nil
}

// parseScore fills in the goals from a "2 - 1" score string. Anything
// unparseable leaves the unplayed sentinels in place.
func parseScore(match *Match, scoreStr string) {
	parts := strings.Split(scoreStr, "-")
	if len(parts) != 2 {
		return
	}
	home, err1 := util.GetAsInteger(strings.TrimSpace(parts[0]))
	away, err2 := util.GetAsInteger(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return
	}
	match.HomeGoals = home
	match.AwayGoals = away
}

// extractMatchDetails walks the per-match detail sections of the payload
// and splits them into players, goal events, red card events and team
// match stats. Detail sections are optional per match, a fixture without
// one simply contributes nothing here.
func (imp *ResultsImporter) extractMatchDetails(pageProps map[string]any, matches []*Match) ([]*Player, []*GoalEvent, []*RedCardEvent, []*TeamMatchStat) {
	var players []*Player
	var goals []*GoalEvent
	var cards []*RedCardEvent
	var stats []*TeamMatchStat

	detailsData, ok := pageProps["matchDetails"].(map[string]any)
	if !ok {
		return players, goals, cards, stats
	}

	idx := matchIndex(matches)
	seenPlayers := make(map[int]bool)

	for key, raw := range detailsData {
		matchID, err := util.GetAsInteger(key)
		if err != nil {
			continue
		}
		if _, known := idx[matchID]; !known {
			continue
		}
		detail, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if events, ok := detail["events"].([]any); ok {
			for eventIdx, rawEvent := range events {
				event, ok := rawEvent.(map[string]any)
				if !ok {
					continue
				}
				playerID, err := util.GetAsInteger(event["playerId"])
				if err != nil {
					continue
				}
				// provider event ids are globally unique; synthesize one
				// from the match when absent
				eventID, err := util.GetAsInteger(event["id"])
				if err != nil {
					eventID = matchID*100 + eventIdx
				}
				teamID, _ := util.GetAsInteger(event["teamId"])
				if !seenPlayers[playerID] {
					seenPlayers[playerID] = true
					name, _ := event["playerName"].(string)
					players = append(players, &Player{ID: playerID, Name: name, TeamID: teamID})
				}

				eventType, _ := event["type"].(string)
				switch eventType {
				case "goal":
					kind := GoalNormal
					if own, _ := event["ownGoal"].(bool); own {
						kind = GoalOwn
					}
					goals = append(goals, &GoalEvent{
						ID:        eventID,
						MatchID:   matchID,
						TeamID:    teamID,
						PlayerID:  playerID,
						EventType: kind,
					})
				case "red_card":
					cards = append(cards, &RedCardEvent{
						ID:       eventID,
						MatchID:  matchID,
						PlayerID: playerID,
					})
				}
			}
		}

		if teamStats, ok := detail["teamStats"].([]any); ok {
			for _, rawStat := range teamStats {
				statData, ok := rawStat.(map[string]any)
				if !ok {
					continue
				}
				teamID, err := util.GetAsInteger(statData["teamId"])
				if err != nil {
					continue
				}
				stat := &TeamMatchStat{MatchID: matchID, TeamID: teamID}
				stat.Fouls, _ = util.GetAsInteger(statData["fouls"])
				stat.RedCards, _ = util.GetAsInteger(statData["redCards"])
				stat.Interceptions, _ = util.GetAsInteger(statData["interceptions"])
				stat.Tackles, _ = util.GetAsInteger(statData["tackles"])
				stat.Passes, _ = util.GetAsInteger(statData["passes"])
				stat.PassesCompleted, _ = util.GetAsInteger(statData["passesCompleted"])
				stats = append(stats, stat)
			}
		}
	}
	return players, goals, cards, stats
}
