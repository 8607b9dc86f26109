package vsr

import "math/bits"

// SecondsLeft returns the seconds until the lockup ends. Constant lockups
// never count down.
func (l *Lockup) SecondsLeft(now int64) uint64 {
	if l.Kind == LockupKindConstant {
		now = l.StartTs
	}
	if now >= l.EndTs {
		return 0
	}
	return uint64(l.EndTs - now)
}

// Expired reports whether no locked time remains.
func (l *Lockup) Expired(now int64) bool { return l.SecondsLeft(now) == 0 }

// PeriodsTotal returns the number of whole periods between start and end.
func (l *Lockup) PeriodsTotal() uint64 {
	period := l.Kind.PeriodSecs()
	if period == 0 || l.EndTs <= l.StartTs {
		return 0
	}
	return uint64((l.EndTs - l.StartTs) / period)
}

// PeriodCurrent returns the number of periods elapsed since start.
func (l *Lockup) PeriodCurrent(now int64) uint64 {
	period := l.Kind.PeriodSecs()
	if period == 0 || now < l.StartTs {
		return 0
	}
	return uint64((now - l.StartTs) / period)
}

// PeriodsLeft returns the periods still locked, rounding partial periods up.
func (l *Lockup) PeriodsLeft(now int64) uint64 {
	period := l.Kind.PeriodSecs()
	if period == 0 {
		return 0
	}
	if l.Kind == LockupKindConstant {
		now = l.StartTs
	}
	if now < l.StartTs {
		return l.PeriodsTotal()
	}
	left := l.SecondsLeft(now)
	return (left + uint64(period) - 1) / uint64(period)
}

// Vested returns how much of the initially locked amount has unlocked.
func (d *DepositEntry) Vested(now int64) uint64 {
	switch d.Lockup.Kind {
	case LockupKindNone:
		return d.AmountInitiallyLockedNative
	case LockupKindConstant:
		return 0
	case LockupKindCliff:
		if d.Lockup.Expired(now) {
			return d.AmountInitiallyLockedNative
		}
		return 0
	}

	total := d.Lockup.PeriodsTotal()
	current := d.Lockup.PeriodCurrent(now)
	if total == 0 || current >= total {
		return d.AmountInitiallyLockedNative
	}
	// current < total keeps the 128-bit quotient within 64 bits
	hi, lo := bits.Mul64(d.AmountInitiallyLockedNative, current)
	vested, _ := bits.Div64(hi, lo, total)
	return vested
}

// AmountLocked returns the still locked part of the deposit.
func (d *DepositEntry) AmountLocked(now int64) uint64 {
	return d.AmountInitiallyLockedNative - d.Vested(now)
}

// AmountUnlocked returns what could be withdrawn at now.
func (d *DepositEntry) AmountUnlocked(now int64) uint64 {
	locked := d.AmountLocked(now)
	if locked >= d.AmountDepositedNative {
		return 0
	}
	return d.AmountDepositedNative - locked
}
