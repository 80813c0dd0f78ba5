// Package textutil holds small text helpers shared by display code.
package textutil
