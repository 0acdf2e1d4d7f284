package engine

import (
	"errors"
	"strings"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestSimulateDriveGame_Seeded(t *testing.T) {
	home := DriveStats{OffensePointsPerDrive: 2.5, DefensePointsPerDrive: 2.2}
	away := DriveStats{OffensePointsPerDrive: 2.3, DefensePointsPerDrive: 2.4}

	result, err := SimulateDriveGame(home, away, DriveConfig{Seed: int64Ptr(42)})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if result.HomeScore != 41 || result.AwayScore != 20 {
		t.Fatalf("unexpected score: %d-%d", result.HomeScore, result.AwayScore)
	}
	if result.Home.Touchdowns != 5 || result.Home.FieldGoals != 2 {
		t.Fatalf("unexpected home breakdown: %d TD, %d FG", result.Home.Touchdowns, result.Home.FieldGoals)
	}
	if result.Away.Touchdowns != 2 || result.Away.FieldGoals != 2 {
		t.Fatalf("unexpected away breakdown: %d TD, %d FG", result.Away.Touchdowns, result.Away.FieldGoals)
	}
	if result.Overtime != nil {
		t.Fatalf("expected no overtime, got %+v", result.Overtime)
	}

	wantHome := []DriveResult{
		DriveTouchdown, DriveTouchdown, DriveNone, DriveTouchdown,
		DriveNone, DriveTouchdown, DriveFieldGoal, DriveNone,
		DriveTouchdown, DriveNone, DriveNone, DriveFieldGoal,
	}
	wantAway := []DriveResult{
		DriveNone, DriveFieldGoal, DriveNone, DriveNone,
		DriveNone, DriveTouchdown, DriveNone, DriveNone,
		DriveFieldGoal, DriveNone, DriveTouchdown, DriveNone,
	}
	if len(result.Home.Drives) != len(wantHome) {
		t.Fatalf("unexpected home drive count: %d", len(result.Home.Drives))
	}
	for i, want := range wantHome {
		if result.Home.Drives[i].Result != want {
			t.Fatalf("home drive %d: got %s, want %s", i, result.Home.Drives[i].Result, want)
		}
	}
	for i, want := range wantAway {
		if result.Away.Drives[i].Result != want {
			t.Fatalf("away drive %d: got %s, want %s", i, result.Away.Drives[i].Result, want)
		}
	}
}

func TestSimulateDriveGame_ScoreConsistency(t *testing.T) {
	home := DriveStats{OffensePointsPerDrive: 2.1, DefensePointsPerDrive: 2.6}
	away := DriveStats{OffensePointsPerDrive: 1.9, DefensePointsPerDrive: 2.0}

	result, err := SimulateDriveGame(home, away, DriveConfig{Seed: int64Ptr(7)})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	for _, team := range []TeamDrives{result.Home, result.Away} {
		sum := 0
		for _, d := range team.Drives {
			switch d.Points {
			case 0, 3, 7:
			default:
				t.Fatalf("illegal drive points: %d", d.Points)
			}
			sum += d.Points
		}
		if sum != team.Score {
			t.Fatalf("drive points sum %d does not match score %d", sum, team.Score)
		}
		if want := 7*team.Touchdowns + 3*team.FieldGoals; want != team.Score {
			t.Fatalf("breakdown mismatch: %d TD, %d FG vs score %d", team.Touchdowns, team.FieldGoals, team.Score)
		}
	}
	if result.HomeScore != result.Home.Score || result.AwayScore != result.Away.Score {
		t.Fatalf("top-level scores diverge from team scores")
	}
}

func TestSimulateDriveGame_Overtime(t *testing.T) {
	stats := DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: 2.0}
	cfg := DriveConfig{
		Seed:          int64Ptr(16),
		DrivesPerTeam: intPtr(6),
		AllowTies:     boolPtr(false),
	}

	result, err := SimulateDriveGame(stats, stats, cfg)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if result.Overtime == nil {
		t.Fatalf("expected overtime on a regulation tie")
	}
	if result.Overtime.Rounds != 1 {
		t.Fatalf("unexpected overtime rounds: %d", result.Overtime.Rounds)
	}
	if result.HomeScore != 14 || result.AwayScore != 21 {
		t.Fatalf("unexpected score: %d-%d", result.HomeScore, result.AwayScore)
	}
	if got := result.Overtime.HomePoints; len(got) != 1 || got[0] != 0 {
		t.Fatalf("unexpected overtime home points: %v", got)
	}
	if got := result.Overtime.AwayPoints; len(got) != 1 || got[0] != 7 {
		t.Fatalf("unexpected overtime away points: %v", got)
	}
	if result.Overtime.Tiebreak != TiebreakNone {
		t.Fatalf("unexpected tiebreak: %s", result.Overtime.Tiebreak)
	}
	if want := 6 + result.Overtime.Rounds; len(result.Home.Drives) != want {
		t.Fatalf("overtime drives not appended: %d drives", len(result.Home.Drives))
	}
}

func TestSimulateDriveGame_AllowTiesSkipsOvertime(t *testing.T) {
	stats := DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: 2.0}
	cfg := DriveConfig{Seed: int64Ptr(16), DrivesPerTeam: intPtr(6)}

	result, err := SimulateDriveGame(stats, stats, cfg)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if result.HomeScore != result.AwayScore {
		t.Fatalf("expected a tie, got %d-%d", result.HomeScore, result.AwayScore)
	}
	if result.Overtime != nil {
		t.Fatalf("expected no overtime when ties are allowed")
	}
}

func TestSimulateDriveGame_OvertimeDisabledKeepsTie(t *testing.T) {
	stats := DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: 2.0}
	cfg := DriveConfig{
		Seed:          int64Ptr(16),
		DrivesPerTeam: intPtr(6),
		AllowTies:     boolPtr(false),
		Overtime:      &DriveOvertimeConfig{Enabled: boolPtr(false)},
	}

	result, err := SimulateDriveGame(stats, stats, cfg)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if result.HomeScore != result.AwayScore {
		t.Fatalf("expected the tie to stand, got %d-%d", result.HomeScore, result.AwayScore)
	}
	if result.Overtime != nil {
		t.Fatalf("expected no overtime block")
	}
}

func TestSimulateDriveGame_Validation(t *testing.T) {
	valid := DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: 2.0}

	cases := []struct {
		name  string
		home  DriveStats
		away  DriveStats
		cfg   DriveConfig
		field string
	}{
		{
			name:  "zero home offense",
			home:  DriveStats{OffensePointsPerDrive: 0, DefensePointsPerDrive: 2.0},
			away:  valid,
			field: "home.offensePointsPerDrive",
		},
		{
			name:  "negative away defense",
			home:  valid,
			away:  DriveStats{OffensePointsPerDrive: 2.0, DefensePointsPerDrive: -1},
			field: "away.defensePointsPerDrive",
		},
		{
			name:  "non-positive drives per team",
			home:  valid,
			away:  valid,
			cfg:   DriveConfig{DrivesPerTeam: intPtr(0)},
			field: "drives per team",
		},
		{
			name:  "negative overtime rounds",
			home:  valid,
			away:  valid,
			cfg:   DriveConfig{AllowTies: boolPtr(false), Overtime: &DriveOvertimeConfig{MaxRounds: intPtr(-1)}},
			field: "overtime max rounds",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SimulateDriveGame(tc.home, tc.away, tc.cfg)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("error %q does not name field %q", err, tc.field)
			}
		})
	}
}

func TestSimulateDrive_SingleDrive(t *testing.T) {
	t.Run("scoreless consumes one draw", func(t *testing.T) {
		draws := 0
		rng := func() float64 { draws++; return 0.99 }
		out, err := SimulateDrive(2.0, 2.0, rng)
		if err != nil {
			t.Fatalf("simulate: %v", err)
		}
		if out.Result != DriveNone || out.Points != 0 {
			t.Fatalf("unexpected outcome: %+v", out)
		}
		if draws != 1 {
			t.Fatalf("expected 1 draw, got %d", draws)
		}
	})

	t.Run("score consumes two draws", func(t *testing.T) {
		draws := 0
		rng := func() float64 { draws++; return 0.1 }
		out, err := SimulateDrive(2.0, 2.0, rng)
		if err != nil {
			t.Fatalf("simulate: %v", err)
		}
		if out.Result != DriveTouchdown || out.Points != 7 {
			t.Fatalf("unexpected outcome: %+v", out)
		}
		if draws != 2 {
			t.Fatalf("expected 2 draws, got %d", draws)
		}
	})

	t.Run("field goal branch", func(t *testing.T) {
		values := []float64{0.1, 0.9}
		rng := func() float64 { v := values[0]; values = values[1:]; return v }
		out, err := SimulateDrive(2.0, 2.0, rng)
		if err != nil {
			t.Fatalf("simulate: %v", err)
		}
		if out.Result != DriveFieldGoal || out.Points != 3 {
			t.Fatalf("unexpected outcome: %+v", out)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		if _, err := SimulateDrive(0, 2.0, func() float64 { return 0.5 }); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestResolveDrive_EfficiencyClamp(t *testing.T) {
	// Efficiencies beyond the clamp range behave like the boundary values,
	// so extreme inputs cannot push the scoring probability past its cap.
	var lastProbe float64
	rng := func() float64 { return lastProbe }

	lastProbe = 0.84
	outExtreme := resolveDrive(100, 0.01, rng)
	outClamped := resolveDrive(4.0, 0.2, rng)
	if (outExtreme.Result == DriveNone) != (outClamped.Result == DriveNone) {
		t.Fatalf("extreme and clamped inputs disagree: %+v vs %+v", outExtreme, outClamped)
	}

	lastProbe = 0.86
	if out := resolveDrive(100, 0.01, rng); out.Result != DriveNone {
		t.Fatalf("probability cap not applied: %+v", out)
	}
}
