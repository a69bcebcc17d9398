// Package schedule is the pure function layer of the review system. It
// generates spaced-repetition reminders from a completed session, resolves
// the effective interval list against the premium policy, and classifies
// reminders into the pending/overdue/completed partition. Nothing in this
// package performs I/O or fails on well-formed input.
package schedule
