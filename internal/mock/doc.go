// Package mock provides a state-based test double for registration.Registrar.
//
// Registrar records every payload it receives and answers from a script of
// results, so tests can assert how many calls were made and what was sent:
//
//	reg := mock.NewRegistrar()
//	reg.FailNext(mock.ErrRejected) // first call fails
//	// second and later calls succeed
//
// A gate holds calls in flight until the test releases them, which is how
// tests observe the InProgress window:
//
//	reg := mock.NewRegistrar().WithGate()
//	go ctrl.Submit(ctx, reg)
//	reg.WaitForCalls(t, 1)
//	reg.Release()
package mock
