package schema

import (
	"fmt"

	qb "github.com/wiedikon/volleyapi/internal/platform/querybuilder"
)

// The shape specs below encode the warehouse's historical layouts. All table
// identifiers are unquoted, so Postgres folds them to lowercase: the upstream
// export's camelCase drift arrives here as its folded form (leagueid,
// teamcaption), and rename sources use exactly those folded names. Keys inside
// jsonb columns are data, not identifiers; they keep the export's camelCase.

func rankingsSpec(shape Shape) (shapeSpec, error) {
	switch shape {
	case ShapeFlat:
		return shapeSpec{
			shape: shape,
			table: "rankings",
			columns: []string{
				"leagueid", "phaseid", "groupid", "wiedikon_team_id", "teamcaption",
				"games", "points", "rank",
				"wins", "winsclear", "winsnarrow",
				"defeats", "defeatsclear", "defeatsnarrow",
				"setswon", "setslost", "ballswon", "ballslost",
				"updated_at",
			},
			orderBy: []string{"rank"},
			scopeConds: map[Scope]func(any) (qb.Condition, error){
				ScopeTeam:  eqCond("wiedikon_team_id"),
				ScopeGroup: eqCond("groupid"),
			},
			makePlan: func(Scope, any) ColumnPlan {
				return ColumnPlan{Renames: flatRankingRenames}
			},
			lookupGroupColumn: "groupid",
			lookupCond: func(teamID int64) (qb.Condition, error) {
				return qb.Eq("wiedikon_team_id", teamID), nil
			},
		}, nil

	case ShapeNested:
		return shapeSpec{
			shape: shape,
			table: "rankings_nested",
			columns: []string{
				"leagueid", "phaseid", "groupid", "ranking", "updated_at",
			},
			orderBy: []string{"groupid"},
			scopeConds: map[Scope]func(any) (qb.Condition, error){
				ScopeTeam: func(v any) (qb.Condition, error) {
					return nestedTeamMatch("ranking", v)
				},
				ScopeGroup: eqCond("groupid"),
			},
			makePlan: func(scope Scope, value any) ColumnPlan {
				repeated := &RepeatedPlan{
					Column:   "ranking",
					Renames:  nestedRankingElementRenames,
					OrderKey: "rank",
				}
				if scope == ScopeTeam {
					repeated.MatchKey = "teamId"
					repeated.MatchValue = value
				}
				return ColumnPlan{
					Renames:  nestedRankingOuterRenames,
					Repeated: repeated,
				}
			},
			lookupGroupColumn: "groupid",
			lookupCond: func(teamID int64) (qb.Condition, error) {
				return nestedTeamMatch("ranking", teamID)
			},
		}, nil

	case ShapeJoinedView:
		return shapeSpec{
			shape: shape,
			table: "rankings_complete",
			columns: []string{
				"league_id", "phaseid", "group_id", "wiedikon_team_id", "teamcaption",
				"gamesplayed", "points", "rank",
				"wins", "wins_clear", "winsnarrow",
				"defeats", "defeats_clear", "defeatsnarrow",
				"setswon", "sets_lost", "ballswon", "balls_lost",
				"updatedat",
			},
			orderBy: []string{"rank"},
			scopeConds: map[Scope]func(any) (qb.Condition, error){
				ScopeTeam:  eqCond("wiedikon_team_id"),
				ScopeGroup: eqCond("group_id"),
			},
			makePlan: func(Scope, any) ColumnPlan {
				return ColumnPlan{Renames: joinedRankingRenames}
			},
			lookupGroupColumn: "group_id",
			lookupCond: func(teamID int64) (qb.Condition, error) {
				return qb.Eq("wiedikon_team_id", teamID), nil
			},
		}, nil

	default:
		return shapeSpec{}, fmt.Errorf("%w: rankings shape %d", ErrShapeNotRegistered, shape)
	}
}

func resultsSpec(shape Shape) (shapeSpec, error) {
	switch shape {
	case ShapeFlat:
		return shapeSpec{
			shape: shape,
			table: "games",
			columns: []string{
				"gameid", "groupid", "playdate",
				"teams_home_caption", "teams_away_caption",
				"hall_caption", "hall_city", "hall_pluscode", "referees",
				"set_1_home", "set_1_away", "set_2_home", "set_2_away",
				"set_3_home", "set_3_away", "set_4_home", "set_4_away",
				"set_5_home", "set_5_away",
				"updated_at",
			},
			orderBy: []string{"playdate", "gameid"},
			scopeConds: map[Scope]func(any) (qb.Condition, error){
				ScopeTeam: func(v any) (qb.Condition, error) {
					return qb.Expr("(home_team_id = ? OR away_team_id = ?)", v, v), nil
				},
				ScopeGroup: eqCond("groupid"),
			},
			makePlan: func(Scope, any) ColumnPlan {
				return ColumnPlan{
					Renames: flatGameRenames,
					Summary: &SummaryPlan{
						Snake:   "result",
						Caption: "Result",
						HomeColumns: []string{
							"set_1_home", "set_2_home", "set_3_home", "set_4_home", "set_5_home",
						},
						AwayColumns: []string{
							"set_1_away", "set_2_away", "set_3_away", "set_4_away", "set_5_away",
						},
					},
				}
			},
		}, nil

	case ShapeNested:
		return shapeSpec{
			shape: shape,
			table: "games_nested",
			columns: []string{
				"gameid", "groupid", "playdate",
				"teams_home_caption", "teams_away_caption",
				"hall_caption", "hall_city", "hall_pluscode", "referees",
				"sets",
				"updated_at",
			},
			orderBy: []string{"playdate", "gameid"},
			scopeConds: map[Scope]func(any) (qb.Condition, error){
				ScopeTeam: func(v any) (qb.Condition, error) {
					return qb.Expr("(home_team_id = ? OR away_team_id = ?)", v, v), nil
				},
				ScopeGroup: eqCond("groupid"),
			},
			makePlan: func(Scope, any) ColumnPlan {
				return ColumnPlan{
					Renames: flatGameRenames,
					Summary: &SummaryPlan{
						Snake:      "result",
						Caption:    "Result",
						SetsColumn: "sets",
						HomeKey:    "home",
						AwayKey:    "away",
					},
				}
			},
		}, nil

	case ShapeJoinedView:
		return shapeSpec{
			shape: shape,
			table: "games_complete",
			columns: []string{
				"gameid", "group_id", "playdate",
				"teams_home_caption", "teams_away_caption",
				"hall_caption", "hall_city", "hall_pluscode", "referees",
				"resultsummary",
				"season_caption", "leaguecaption", "phase_caption", "groupcaption",
				"updated_at",
			},
			orderBy: []string{"playdate", "gameid"},
			scopeConds: map[Scope]func(any) (qb.Condition, error){
				// The view keeps one row per game, so team scope filters on the
				// game's own team id columns rather than a joined ranking row.
				ScopeTeam: func(v any) (qb.Condition, error) {
					return qb.Expr("(home_team_id = ? OR away_team_id = ?)", v, v), nil
				},
				ScopeGroup: eqCond("group_id"),
			},
			makePlan: func(Scope, any) ColumnPlan {
				return ColumnPlan{
					Renames: joinedGameRenames,
					Summary: &SummaryPlan{
						Snake:   "result",
						Caption: "Result",
						Column:  "resultsummary",
					},
				}
			},
		}, nil

	default:
		return shapeSpec{}, fmt.Errorf("%w: results shape %d", ErrShapeNotRegistered, shape)
	}
}

func eqCond(column string) func(any) (qb.Condition, error) {
	return func(v any) (qb.Condition, error) {
		return qb.Eq(column, v), nil
	}
}

var flatRankingRenames = []Rename{
	{Source: "leagueid", Snake: "league_id"},
	{Source: "phaseid", Snake: "phase_id"},
	{Source: "groupid", Snake: "group_id"},
	{Source: "wiedikon_team_id", Snake: "team_id"},
	{Source: "teamcaption", Snake: "team_name", Caption: "Team"},
	{Source: "games", Snake: "games_played", Caption: "# Matches"},
	{Source: "points", Snake: "points", Caption: "Pts"},
	{Source: "rank", Snake: "rank", Caption: "Rank"},
	{Source: "wins", Snake: "wins", Caption: "Matches won"},
	{Source: "winsclear", Snake: "wins_clear"},
	{Source: "winsnarrow", Snake: "wins_narrow"},
	{Source: "defeats", Snake: "defeats", Caption: "Matches lost"},
	{Source: "defeatsclear", Snake: "defeats_clear"},
	{Source: "defeatsnarrow", Snake: "defeats_narrow"},
	{Source: "setswon", Snake: "sets_won", Caption: "Sets won"},
	{Source: "setslost", Snake: "sets_lost", Caption: "Sets lost"},
	{Source: "ballswon", Snake: "balls_won", Caption: "Balls won"},
	{Source: "ballslost", Snake: "balls_lost", Caption: "Balls lost"},
	{Source: "updated_at", Snake: "updated_at", Timestamp: true},
}

var nestedRankingOuterRenames = []Rename{
	{Source: "leagueid", Snake: "league_id"},
	{Source: "phaseid", Snake: "phase_id"},
	{Source: "groupid", Snake: "group_id"},
	{Source: "updated_at", Snake: "updated_at", Timestamp: true},
}

// Sources here are jsonb object keys, decoded verbatim; no identifier folding
// applies inside the repeated column.
var nestedRankingElementRenames = []Rename{
	{Source: "teamId", Snake: "team_id"},
	{Source: "teamCaption", Snake: "team_name", Caption: "Team"},
	{Source: "games", Snake: "games_played", Caption: "# Matches"},
	{Source: "points", Snake: "points", Caption: "Pts"},
	{Source: "rank", Snake: "rank", Caption: "Rank"},
	{Source: "wins", Snake: "wins", Caption: "Matches won"},
	{Source: "winsClear", Snake: "wins_clear"},
	{Source: "winsNarrow", Snake: "wins_narrow"},
	{Source: "defeats", Snake: "defeats", Caption: "Matches lost"},
	{Source: "defeatsClear", Snake: "defeats_clear"},
	{Source: "defeatsNarrow", Snake: "defeats_narrow"},
	{Source: "setsWon", Snake: "sets_won", Caption: "Sets won"},
	{Source: "setsLost", Snake: "sets_lost", Caption: "Sets lost"},
	{Source: "ballsWon", Snake: "balls_won", Caption: "Balls won"},
	{Source: "ballsLost", Snake: "balls_lost", Caption: "Balls lost"},
}

var joinedRankingRenames = []Rename{
	{Source: "league_id", Snake: "league_id"},
	{Source: "phaseid", Snake: "phase_id"},
	{Source: "group_id", Snake: "group_id"},
	{Source: "wiedikon_team_id", Snake: "team_id"},
	{Source: "teamcaption", Snake: "team_name", Caption: "Team"},
	{Source: "gamesplayed", Snake: "games_played", Caption: "# Matches"},
	{Source: "points", Snake: "points", Caption: "Pts"},
	{Source: "rank", Snake: "rank", Caption: "Rank"},
	{Source: "wins", Snake: "wins", Caption: "Matches won"},
	{Source: "wins_clear", Snake: "wins_clear"},
	{Source: "winsnarrow", Snake: "wins_narrow"},
	{Source: "defeats", Snake: "defeats", Caption: "Matches lost"},
	{Source: "defeats_clear", Snake: "defeats_clear"},
	{Source: "defeatsnarrow", Snake: "defeats_narrow"},
	{Source: "setswon", Snake: "sets_won", Caption: "Sets won"},
	{Source: "sets_lost", Snake: "sets_lost", Caption: "Sets lost"},
	{Source: "ballswon", Snake: "balls_won", Caption: "Balls won"},
	{Source: "balls_lost", Snake: "balls_lost", Caption: "Balls lost"},
	{Source: "updatedat", Snake: "updated_at", Timestamp: true},
}

var flatGameRenames = []Rename{
	{Source: "gameid", Snake: "game_id"},
	{Source: "groupid", Snake: "group_id"},
	{Source: "playdate", Snake: "play_date", Caption: "Date", Timestamp: true},
	{Source: "teams_home_caption", Snake: "home_team", Caption: "Home"},
	{Source: "teams_away_caption", Snake: "away_team", Caption: "Away"},
	{Source: "hall_caption", Snake: "hall_name", Caption: "Halle"},
	{Source: "hall_city", Snake: "hall_city", Caption: "City"},
	{Source: "hall_pluscode", Snake: "hall_plus_code", Caption: "PlusCode"},
	{Source: "referees", Snake: "referees", Caption: "Referee(s)"},
	{Source: "updated_at", Snake: "updated_at", Timestamp: true},
}

var joinedGameRenames = []Rename{
	{Source: "gameid", Snake: "game_id"},
	{Source: "group_id", Snake: "group_id"},
	{Source: "playdate", Snake: "play_date", Caption: "Date", Timestamp: true},
	{Source: "teams_home_caption", Snake: "home_team", Caption: "Home"},
	{Source: "teams_away_caption", Snake: "away_team", Caption: "Away"},
	{Source: "hall_caption", Snake: "hall_name", Caption: "Halle"},
	{Source: "hall_city", Snake: "hall_city", Caption: "City"},
	{Source: "hall_pluscode", Snake: "hall_plus_code", Caption: "PlusCode"},
	{Source: "referees", Snake: "referees", Caption: "Referee(s)"},
	{Source: "season_caption", Snake: "season", Caption: "Season"},
	{Source: "leaguecaption", Snake: "league", Caption: "League"},
	{Source: "phase_caption", Snake: "phase", Caption: "Phase"},
	{Source: "groupcaption", Snake: "group", Caption: "Group"},
	{Source: "updated_at", Snake: "updated_at", Timestamp: true},
}
