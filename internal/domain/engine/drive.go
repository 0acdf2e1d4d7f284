package engine

import "fmt"

// DriveStats describes one team's average points scored and allowed per drive.
type DriveStats struct {
	OffensePointsPerDrive float64
	DefensePointsPerDrive float64
}

func (s DriveStats) validate(team string) error {
	if err := requirePositive(team+".offensePointsPerDrive", s.OffensePointsPerDrive); err != nil {
		return err
	}
	return requirePositive(team+".defensePointsPerDrive", s.DefensePointsPerDrive)
}

type DriveResult string

const (
	DriveTouchdown DriveResult = "TD"
	DriveFieldGoal DriveResult = "FG"
	DriveNone      DriveResult = "NONE"
)

// DriveOutcome is one resolved possession.
type DriveOutcome struct {
	Result DriveResult `json:"result"`
	Points int         `json:"points"`
}

// TeamDrives accumulates one team's possessions in play order, overtime
// drives included.
type TeamDrives struct {
	Score      int            `json:"score"`
	Touchdowns int            `json:"touchdowns"`
	FieldGoals int            `json:"fieldGoals"`
	Drives     []DriveOutcome `json:"drives"`
}

func (t *TeamDrives) record(o DriveOutcome) {
	t.Drives = append(t.Drives, o)
	t.Score += o.Points
	switch o.Result {
	case DriveTouchdown:
		t.Touchdowns++
	case DriveFieldGoal:
		t.FieldGoals++
	}
}

// DriveOvertimeConfig tunes sudden-death play when ties are disallowed.
type DriveOvertimeConfig struct {
	Enabled   *bool // default true
	MaxRounds *int  // default 6 when enabled
}

// DriveConfig configures one drive-engine game. Nil fields take defaults.
type DriveConfig struct {
	Seed          *int64
	DrivesPerTeam *int  // default 12
	AllowTies     *bool // default true
	Overtime      *DriveOvertimeConfig
}

// DriveGameResult is the full outcome of one drive-engine game.
type DriveGameResult struct {
	Home      TeamDrives `json:"home"`
	Away      TeamDrives `json:"away"`
	HomeScore int        `json:"homeScore"`
	AwayScore int        `json:"awayScore"`
	Overtime  *Overtime  `json:"overtime,omitempty"`
}

const (
	driveEfficiencyMin   = 0.2
	driveEfficiencyMax   = 4.0
	driveScoringRate     = 0.4
	driveScoringProbMax  = 0.85
	driveTouchdownShare  = 0.75
	defaultDrivesPerTeam = 12
	defaultDriveOTRounds = 6
)

// SimulateDrive resolves a single possession of offense against defense.
// It consumes one RNG value for a scoreless drive and two for a score; the
// draw order is part of the reproducibility contract.
func SimulateDrive(offense, defense float64, rng Rand) (DriveOutcome, error) {
	if err := requirePositive("offense points per drive", offense); err != nil {
		return DriveOutcome{}, err
	}
	if err := requirePositive("defense points per drive", defense); err != nil {
		return DriveOutcome{}, err
	}
	return resolveDrive(offense, defense, rng), nil
}

func resolveDrive(offense, defense float64, rng Rand) DriveOutcome {
	offense = clampFloat(offense, driveEfficiencyMin, driveEfficiencyMax)
	defense = clampFloat(defense, driveEfficiencyMin, driveEfficiencyMax)

	scoringProb := clampFloat(driveScoringRate*offense/defense, 0, driveScoringProbMax)
	if rng() >= scoringProb {
		return DriveOutcome{Result: DriveNone, Points: 0}
	}
	if rng() < driveTouchdownShare {
		return DriveOutcome{Result: DriveTouchdown, Points: 7}
	}
	return DriveOutcome{Result: DriveFieldGoal, Points: 3}
}

// SimulateDriveGame plays a regulation game of alternating home and away
// drives, then sudden-death overtime rounds when ties are disallowed. An
// unresolved tie at the overtime round cap is a legal result, not an error.
func SimulateDriveGame(home, away DriveStats, cfg DriveConfig) (DriveGameResult, error) {
	if err := home.validate("home"); err != nil {
		return DriveGameResult{}, err
	}
	if err := away.validate("away"); err != nil {
		return DriveGameResult{}, err
	}

	drivesPerTeam := defaultDrivesPerTeam
	if cfg.DrivesPerTeam != nil {
		drivesPerTeam = *cfg.DrivesPerTeam
	}
	if drivesPerTeam <= 0 {
		return DriveGameResult{}, fmt.Errorf("%w: drives per team must be greater than zero", ErrInvalidInput)
	}

	allowTies := true
	if cfg.AllowTies != nil {
		allowTies = *cfg.AllowTies
	}

	maxRounds := 0
	if !allowTies {
		enabled := true
		if cfg.Overtime != nil && cfg.Overtime.Enabled != nil {
			enabled = *cfg.Overtime.Enabled
		}
		if enabled {
			maxRounds = defaultDriveOTRounds
			if cfg.Overtime != nil && cfg.Overtime.MaxRounds != nil {
				maxRounds = *cfg.Overtime.MaxRounds
			}
			if maxRounds < 0 {
				return DriveGameResult{}, fmt.Errorf("%w: overtime max rounds must be zero or greater", ErrInvalidInput)
			}
		}
	}

	rng := randFromSeed(cfg.Seed)
	var result DriveGameResult

	for i := 0; i < drivesPerTeam; i++ {
		result.Home.record(resolveDrive(home.OffensePointsPerDrive, away.DefensePointsPerDrive, rng))
		result.Away.record(resolveDrive(away.OffensePointsPerDrive, home.DefensePointsPerDrive, rng))
	}

	ot := Overtime{Tiebreak: TiebreakNone}
	for result.Home.Score == result.Away.Score && ot.Rounds < maxRounds {
		h := resolveDrive(home.OffensePointsPerDrive, away.DefensePointsPerDrive, rng)
		result.Home.record(h)
		a := resolveDrive(away.OffensePointsPerDrive, home.DefensePointsPerDrive, rng)
		result.Away.record(a)
		ot.HomePoints = append(ot.HomePoints, h.Points)
		ot.AwayPoints = append(ot.AwayPoints, a.Points)
		ot.Rounds++
	}
	if ot.Rounds > 0 {
		result.Overtime = &ot
	}

	result.HomeScore = result.Home.Score
	result.AwayScore = result.Away.Score
	return result, nil
}
