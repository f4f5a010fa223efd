// Package control
// Author: momentics <momentics@gmail.com>
//
// Control-plane layer for tickcore: runtime metrics registry and debug
// probe reflection. The scheduler core itself never logs or records; the
// integration boundary (facade) feeds this layer instead.
package control
