package rewards

import "github.com/harmonlab/harmony-rl/music"

// Rule scores one music theory property of a candidate action (one
// pitch per harmony voice) against the state before the action is
// applied. Rules are stateless and side effect free, and every rule
// returns a value clipped to [RuleMin, RuleMax] so that no single rule
// dominates the weighted sum unless its weight says so.
type Rule func(ctx *Context, action []int) float64

const (
	RuleMin = -1.0
	RuleMax = 1.0
)

func clip(v float64) float64 {
	if v < RuleMin {
		return RuleMin
	}
	if v > RuleMax {
		return RuleMax
	}
	return v
}

// catalog maps every Kind to its rule. The table is total: a missing
// entry would panic the aggregator constructor at configuration time.
var catalog = [numKinds]Rule{
	AvoidRepetition:          avoidRepetition,
	PreferArpeggios:          preferArpeggios,
	PreferScaleDegrees:       preferScaleDegrees,
	PreferTonic:              preferTonic,
	PreferLeadingTone:        preferLeadingTone,
	PreferResolution:         preferResolution,
	PreferCommonChords:       preferCommonChords,
	PreferCommonProgressions: preferCommonProgressions,
	PreferVoiceLeading:       preferVoiceLeading,
	PreferHarmonicCoherence:  preferHarmonicCoherence,
	PreferStrongBeats:        preferStrongBeats,
	PreferWeakBeats:          preferWeakBeats,
	PreferCommonRhythms:      preferCommonRhythms,
	PreferCommonDurations:    preferCommonDurations,
	PreferCommonPitches:      preferCommonPitches,
	PreferCommonIntervals:    preferCommonIntervals,
	PreferCounterpoint:       preferCounterpoint,
	PreferFormalCoherence:    preferFormalCoherence,
	PreferStyleConsistency:   preferStyleConsistency,
	PreferContraryMotion:     preferContraryMotion,
	PenalizeParallelMotion:   penalizeParallelMotion,
}

// RuleFor returns the catalog rule for a kind.
func RuleFor(k Kind) Rule {
	return catalog[k]
}

// avoidRepetition penalizes a harmony voice that keeps restating its
// most recent pitch.
func avoidRepetition(ctx *Context, action []int) float64 {
	if len(action) == 0 {
		return 0
	}
	total := 0.0
	for v, pitch := range action {
		hist := voiceHistory(ctx, v)
		if len(hist) == 0 {
			continue
		}
		if hist[len(hist)-1] == pitch {
			if len(hist) >= 2 && hist[len(hist)-2] == pitch {
				total -= 1.0
			} else {
				total -= 0.5
			}
		} else {
			total += 0.25
		}
	}
	return clip(total / float64(len(action)))
}

// preferArpeggios rewards voices that leap along triad intervals from
// their previous note.
func preferArpeggios(ctx *Context, action []int) float64 {
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		scored++
		leap := pitch - prev
		if leap < 0 {
			leap = -leap
		}
		switch leap {
		case 3, 4, 5, 7, 8, 9, 12:
			total += 1.0
		case 0, 1, 2:
			// stepwise or static, neutral
		default:
			total -= 0.5
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// preferScaleDegrees scores the fraction of action pitches that stay
// diatonic to the key.
func preferScaleDegrees(ctx *Context, action []int) float64 {
	if len(action) == 0 {
		return 0
	}
	in, out := 0, 0
	for _, pitch := range action {
		if music.InScale(pitch, ctx.Tonic, ctx.scale()) {
			in++
		} else {
			out++
		}
	}
	return clip((float64(in) - float64(out)) / float64(len(action)))
}

// preferTonic rewards tonic pitch classes, with extra emphasis at the
// opening and closing steps of the episode.
func preferTonic(ctx *Context, action []int) float64 {
	if len(action) == 0 {
		return 0
	}
	total := 0.0
	boundary := ctx.Step == 0 || ctx.Step == ctx.Horizon-1
	for _, pitch := range action {
		if music.PitchClass(pitch-ctx.Tonic) == 0 {
			if boundary {
				total += 1.0
			} else {
				total += 0.4
			}
		}
	}
	return clip(total / float64(len(action)))
}

// preferLeadingTone rewards a leading tone resolving up a semitone to
// the tonic and penalizes one left hanging.
func preferLeadingTone(ctx *Context, action []int) float64 {
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		if music.PitchClass(prev-ctx.Tonic) != 11 {
			continue
		}
		scored++
		if pitch == prev+1 {
			total += 1.0
		} else {
			total -= 0.5
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// preferResolution rewards a dissonant interval against the melody
// resolving to a consonant one.
func preferResolution(ctx *Context, action []int) float64 {
	if ctx.PrevMelody == NoPitch {
		return 0
	}
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		wasDissonant := music.DissonantIntervals[music.IntervalClass(ctx.PrevMelody, prev)]
		if !wasDissonant {
			continue
		}
		scored++
		if music.IsConsonant(ctx.Melody, pitch) {
			total += 1.0
		} else {
			total -= 0.5
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// preferCommonChords rewards sonorities that form recognizable triads
// together with the melody note.
func preferCommonChords(ctx *Context, action []int) float64 {
	pitches := append([]int{ctx.Melody}, action...)
	switch music.QualityOf(pitches) {
	case music.ChordMajor, music.ChordMinor:
		return 1.0
	case music.ChordDiminished:
		return 0.25
	default:
		return -0.25
	}
}

// preferCommonProgressions scores the root motion from the previous
// sonority. Motion by fourth or fifth dominates common progressions
// (I-IV-V-I, ii-V-I), motion by second is common, static roots are
// neutral.
func preferCommonProgressions(ctx *Context, action []int) float64 {
	prevRoot, ok := chordRoot(append([]int{ctx.PrevMelody}, ctx.PrevHarmony...))
	if !ok || ctx.PrevMelody == NoPitch {
		return 0
	}
	curRoot, ok := chordRoot(append([]int{ctx.Melody}, action...))
	if !ok {
		return 0
	}
	motion := music.PitchClass(curRoot - prevRoot)
	switch motion {
	case 5, 7:
		return 1.0
	case 2, 10:
		return 0.5
	case 0:
		return 0
	default:
		return -0.25
	}
}

// preferVoiceLeading rewards stepwise motion, tolerates modest leaps
// and penalizes large ones.
func preferVoiceLeading(ctx *Context, action []int) float64 {
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		scored++
		leap := pitch - prev
		if leap < 0 {
			leap = -leap
		}
		switch {
		case leap <= 2:
			total += 1.0
		case leap <= 7:
			total += 0.4
		default:
			total -= 0.5
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// preferHarmonicCoherence blends melodic consonance with chord quality
// into one combined harmony score.
func preferHarmonicCoherence(ctx *Context, action []int) float64 {
	return clip(0.5*consonanceScore(ctx, action) + 0.5*preferCommonChords(ctx, action))
}

// preferStrongBeats asks for consonant support on metrically strong
// steps. Off the strong beat the rule abstains.
func preferStrongBeats(ctx *Context, action []int) float64 {
	if !ctx.strongBeat() || len(action) == 0 {
		return 0
	}
	consonant := 0
	for _, pitch := range action {
		if music.IsConsonant(ctx.Melody, pitch) {
			consonant++
		}
	}
	if consonant*3 >= len(action)*2 {
		return 1.0
	}
	return -0.5
}

// preferWeakBeats allows passing dissonance on weak steps, rewarding
// the tension it adds.
func preferWeakBeats(ctx *Context, action []int) float64 {
	if ctx.strongBeat() || len(action) == 0 {
		return 0
	}
	dissonant := 0
	for _, pitch := range action {
		if music.DissonantIntervals[music.IntervalClass(ctx.Melody, pitch)] {
			dissonant++
		}
	}
	if dissonant > 0 && dissonant*2 <= len(action) {
		return 0.5
	}
	if dissonant == 0 {
		return 0.25
	}
	return -0.25
}

// preferCommonRhythms rewards step durations drawn from the common
// subdivision grid.
func preferCommonRhythms(ctx *Context, action []int) float64 {
	switch ctx.StepDuration {
	case 0.25, 0.5, 1.0:
		return 1.0
	case 0.125, 2.0:
		return 0.25
	default:
		return -0.25
	}
}

// preferCommonDurations penalizes extreme note lengths.
func preferCommonDurations(ctx *Context, action []int) float64 {
	d := ctx.StepDuration
	switch {
	case d >= 0.25 && d <= 1.0:
		return 1.0
	case d >= 0.125 && d <= 2.0:
		return 0.25
	default:
		return -0.5
	}
}

// preferCommonPitches rewards pitches in the comfortable central range
// and on frequently used pitch classes.
func preferCommonPitches(ctx *Context, action []int) float64 {
	if len(action) == 0 {
		return 0
	}
	common := map[int]bool{0: true, 2: true, 4: true, 5: true, 7: true, 9: true}
	total := 0.0
	for _, pitch := range action {
		if pitch >= 48 && pitch <= 84 {
			total += 0.5
		}
		if common[music.PitchClass(pitch-ctx.Tonic)] {
			total += 0.5
		} else {
			total -= 0.25
		}
	}
	return clip(total / float64(len(action)))
}

// preferCommonIntervals scores consonance against the melody note,
// matching the classic consonant/dissonant split.
func preferCommonIntervals(ctx *Context, action []int) float64 {
	return clip(consonanceScore(ctx, action))
}

// preferCounterpoint applies the species counterpoint prohibitions:
// parallel perfect fifths and octaves against the melody are heavily
// penalized, independent motion into consonance is rewarded.
func preferCounterpoint(ctx *Context, action []int) float64 {
	if ctx.PrevMelody == NoPitch {
		return 0
	}
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		scored++
		motion := music.ClassifyMotion(ctx.PrevMelody, ctx.Melody, prev, pitch)
		prevIC := music.IntervalClass(ctx.PrevMelody, prev)
		curIC := music.IntervalClass(ctx.Melody, pitch)
		perfect := func(ic int) bool { return ic == 0 || ic == 7 }
		if motion == music.MotionParallel && perfect(prevIC) && perfect(curIC) {
			total -= 1.0
			continue
		}
		if (motion == music.MotionContrary || motion == music.MotionOblique) && music.IsConsonant(ctx.Melody, pitch) {
			total += 0.5
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// preferFormalCoherence rewards cadential movement toward tonic and
// dominant ground as the episode closes.
func preferFormalCoherence(ctx *Context, action []int) float64 {
	if ctx.Horizon <= 0 || ctx.Step*4 < ctx.Horizon*3 {
		return 0
	}
	root, ok := chordRoot(append([]int{ctx.Melody}, action...))
	if !ok {
		return 0
	}
	switch music.PitchClass(root - ctx.Tonic) {
	case 0:
		return 1.0
	case 7:
		return 0.5
	default:
		return -0.25
	}
}

// preferStyleConsistency is a combined score over diatonicism,
// consonance and smooth motion, a coarse "does this sound like one
// style" signal.
func preferStyleConsistency(ctx *Context, action []int) float64 {
	return clip((preferScaleDegrees(ctx, action) + consonanceScore(ctx, action) + preferVoiceLeading(ctx, action)) / 3)
}

// preferContraryMotion rewards harmony voices moving against the
// melody. Oblique motion over a static melody earns half credit, the
// same split as the original contrary motion trainer.
func preferContraryMotion(ctx *Context, action []int) float64 {
	if ctx.PrevMelody == NoPitch {
		return 0
	}
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		scored++
		switch music.ClassifyMotion(ctx.PrevMelody, ctx.Melody, prev, pitch) {
		case music.MotionContrary:
			total += 1.0
		case music.MotionOblique:
			total += 0.5
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// penalizeParallelMotion classifies parallel and oblique motion.
// Parallel motion scores negative so that styles which tolerate it
// (pop voicings) simply weight the rule near zero, while oblique
// motion earns a flat small reward.
func penalizeParallelMotion(ctx *Context, action []int) float64 {
	if ctx.PrevMelody == NoPitch {
		return 0
	}
	scored := 0
	total := 0.0
	for v, pitch := range action {
		prev := prevPitch(ctx, v)
		if prev == NoPitch {
			continue
		}
		scored++
		switch music.ClassifyMotion(ctx.PrevMelody, ctx.Melody, prev, pitch) {
		case music.MotionParallel:
			total -= 1.0
		case music.MotionOblique:
			total += 0.25
		}
	}
	if scored == 0 {
		return 0
	}
	return clip(total / float64(scored))
}

// consonanceScore is the shared melodic consonance measure: +1 per
// consonant voice, -0.5 per dissonant voice, averaged.
func consonanceScore(ctx *Context, action []int) float64 {
	if len(action) == 0 {
		return 0
	}
	total := 0.0
	for _, pitch := range action {
		if music.IsConsonant(ctx.Melody, pitch) {
			total += 1.0
		} else {
			total -= 0.5
		}
	}
	return total / float64(len(action))
}

func prevPitch(ctx *Context, voice int) int {
	if voice < 0 || voice >= len(ctx.PrevHarmony) {
		return NoPitch
	}
	return ctx.PrevHarmony[voice]
}

func voiceHistory(ctx *Context, voice int) []int {
	if voice < 0 || voice >= len(ctx.HarmonyHistory) {
		return nil
	}
	return ctx.HarmonyHistory[voice]
}
