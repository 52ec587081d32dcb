// Package scicalc implements the expression evaluator of a scientific
// calculator.
//
// Expressions are what a calculator keypad produces: numbers, the operators
// + - * / % ^, parentheses, postfix ! for factorial, the display glyphs
// × ÷ − π, the constants PI and E, and calls to a fixed set of functions:
// sqrt, pow, abs, sin, cos, tan, log, ln, deg, and factorial. Adjacent terms
// multiply, so "2π" and "3(1+1)" mean what they look like. That
// multiplication is left to right with * and /, so "1/2π" is "(1/2)*π".
// "-2^2" is "-(2^2)", and "2^3!" is "2^(3!)". E may not touch a digit, so
// "1E5" is rejected rather than read as a product.
//
// Evaluation never executes anything outside that grammar. Input is checked
// against an allowlist before it is tokenized, and the parser only knows the
// names in its tables. Every failure is reported as a Result with one of four
// kinds instead of a panic.
//
package scicalc
