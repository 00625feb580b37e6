// meta/meta.go
package meta

// GAMMA is the default discount factor.
const GAMMA = 0.9

// TOLERANCE is the default max-norm convergence threshold.
const TOLERANCE = 1e-8

// GO_ROUTINES is the default number of goroutines per sweep.
const GO_ROUTINES = 1

// EPISODES is the default number of rollout episodes.
const EPISODES = 100

// MAX_STEPS_SMALL and MAX_STEPS_LARGE are the episode step limits for 4x4 and 8x8 lakes.
const MAX_STEPS_SMALL = 100
const MAX_STEPS_LARGE = 200
