// Package planner содержит декомпозицию целей кампаний в work items.
//
// Ядро видит только контракт Decomposer; Heuristic — встроенная
// детерминированная реализация-прототип.
package planner
