// Package async provides a bounded worker pool with per-input error
// collection.
//
// [Apply] runs one function over a list of inputs on a bounded pool of
// goroutines and returns one [Result] per input once every input has been
// processed. A failing input never cancels its siblings.
package async
