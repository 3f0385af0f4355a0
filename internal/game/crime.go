package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/foxsi02/russian-world-game/internal/crime"
	"github.com/foxsi02/russian-world-game/internal/role"
	"github.com/foxsi02/russian-world-game/internal/telemetry"
)

// Skill exp granted for a successful contested action.
const (
	arrestSkillExp  = 25
	robberySkillExp = 20
)

type CrimeResult struct {
	ID      string     `json:"id"`
	Kind    crime.Kind `json:"kind"`
	Success bool       `json:"success"`
	Chance  float64    `json:"chance"`
	Amount  int        `json:"amount,omitempty"`
}

// Arrest is a police action against another player. Success locks the
// suspect up for the configured duration and clears their wanted level.
func (e *Engine) Arrest(ctx context.Context, policeID, suspectID int64, evidence int) (CrimeResult, error) {
	if evidence < 0 {
		return CrimeResult{}, ErrInvalidEvidence
	}
	if policeID == suspectID {
		return CrimeResult{}, ErrSelfTarget
	}

	police, err := e.loadPlayer(ctx, policeID)
	if err != nil {
		return CrimeResult{}, err
	}
	if police.Role != role.Police {
		return CrimeResult{}, ErrRoleMismatch
	}

	suspect, err := e.loadPlayer(ctx, suspectID)
	if err != nil {
		return CrimeResult{}, err
	}

	now := e.now()
	if suspect.Arrested(now) {
		return CrimeResult{}, ErrTargetArrested
	}

	chance := Chance{
		Base: e.Balance.ArrestBaseChance,
		Min:  e.Balance.ArrestMinChance,
		Max:  e.Balance.ArrestMaxChance,
	}
	bonus := float64(evidence)*e.Balance.ArrestPerEvidence + float64(suspect.Wanted)*e.Balance.ArrestPerWanted
	success, p := e.resolve(chance, bonus)

	if success {
		police.Balance += e.Balance.ArrestReward
		police.Reputation += e.Balance.ArrestReputation
		police.AddSkillExp("law_enforcement", arrestSkillExp)

		until := now.Add(e.Balance.ArrestDuration)
		suspect.ArrestedUntil = &until
		suspect.Wanted = 0
	} else {
		police.Reputation -= e.Balance.ArrestFailReputation
		suspect.Wanted++
	}

	if _, err := e.Players.Update(ctx, police); err != nil {
		return CrimeResult{}, err
	}
	if _, err := e.Players.Update(ctx, suspect); err != nil {
		return CrimeResult{}, err
	}

	rec := crime.Interaction{
		ID:          uuid.NewString(),
		Kind:        crime.KindArrest,
		InitiatorID: policeID,
		TargetID:    suspectID,
		Success:     success,
		CreatedAt:   now,
	}
	if err := e.Crimes.Add(ctx, rec); err != nil {
		return CrimeResult{}, err
	}
	e.record(telemetry.EventArrestAttempted, telemetry.EventMetadata{
		"police_id": policeID, "suspect_id": suspectID, "success": success,
	})

	return CrimeResult{ID: rec.ID, Kind: crime.KindArrest, Success: success, Chance: p}, nil
}

// Rob is a criminal action against another player. A failed attempt raises
// the robber's wanted level faster than a successful one.
func (e *Engine) Rob(ctx context.Context, robberID, victimID int64) (CrimeResult, error) {
	if robberID == victimID {
		return CrimeResult{}, ErrSelfTarget
	}

	robber, err := e.loadPlayer(ctx, robberID)
	if err != nil {
		return CrimeResult{}, err
	}
	if robber.Role != role.Criminal {
		return CrimeResult{}, ErrRoleMismatch
	}

	now := e.now()
	if robber.Arrested(now) {
		return CrimeResult{}, ErrArrested
	}

	victim, err := e.loadPlayer(ctx, victimID)
	if err != nil {
		return CrimeResult{}, err
	}

	chance := Chance{
		Base: e.Balance.RobberyBaseChance,
		Min:  e.Balance.RobberyMinChance,
		Max:  e.Balance.RobberyMaxChance,
	}
	bonus := float64(robber.SkillLevel("stealth")) * e.Balance.RobberyPerStealth
	success, p := e.resolve(chance, bonus)

	amount := 0
	if success {
		amount = victim.Balance * e.Balance.RobberyCutPct / 100
		if amount > e.Balance.RobberyCap {
			amount = e.Balance.RobberyCap
		}
		victim.Balance -= amount
		robber.Balance += amount
		robber.AddSkillExp("stealth", robberySkillExp)
		robber.Wanted++
	} else {
		robber.Reputation -= e.Balance.RobberyFailReputation
		robber.Wanted += 2
	}

	if _, err := e.Players.Update(ctx, robber); err != nil {
		return CrimeResult{}, err
	}
	if success {
		if _, err := e.Players.Update(ctx, victim); err != nil {
			return CrimeResult{}, err
		}
	}

	rec := crime.Interaction{
		ID:          uuid.NewString(),
		Kind:        crime.KindRobbery,
		InitiatorID: robberID,
		TargetID:    victimID,
		Success:     success,
		Amount:      amount,
		CreatedAt:   now,
	}
	if err := e.Crimes.Add(ctx, rec); err != nil {
		return CrimeResult{}, err
	}
	e.record(telemetry.EventRobberyAttempted, telemetry.EventMetadata{
		"robber_id": robberID, "victim_id": victimID, "success": success, "amount": amount,
	})

	return CrimeResult{ID: rec.ID, Kind: crime.KindRobbery, Success: success, Chance: p, Amount: amount}, nil
}
