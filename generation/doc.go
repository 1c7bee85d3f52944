// Package generation rephrases text through a pool of interchangeable
// providers and remembers which provider produced each recent output.
//
// [Controller.Generate] tries providers in a fresh random order on every
// call and returns the first success. Successful outputs go into a bounded
// [History] that [Controller.MessageInfo] searches newest first.
package generation
