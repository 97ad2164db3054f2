package blake2b

// compress runs one BLAKE2b compression on the current block buffer,
// mixing it into the running hash state. The round structure below is
// unrolled and the message-word permutation for each round precomputed by
// hand from the SIGMA table, the way reference BLAKE2b implementations do
// it for speed; it is not meant to be read against the permutation table
// directly.
func (d *digest) compress() {
	v0, v1, v2, v3 := d.h[0], d.h[1], d.h[2], d.h[3]
	v4, v5, v6, v7 := d.h[4], d.h[5], d.h[6], d.h[7]
	v8, v9, v10, v11 := ivIV0, ivIV1, ivIV2, ivIV3
	v12 := ivIV4 ^ d.t0
	v13 := ivIV5 ^ d.t1
	v14 := ivIV6 ^ d.f0
	v15 := ivIV7 ^ d.f1

	m0 := u64LE(d.buf[0*8 : 0*8+8])
	m1 := u64LE(d.buf[1*8 : 1*8+8])
	v0, v4, v8, v12 = g(v0+v4+m0, v4, v8, v12, m1)
	m2 := u64LE(d.buf[2*8 : 2*8+8])
	m3 := u64LE(d.buf[3*8 : 3*8+8])
	v1, v5, v9, v13 = g(v1+v5+m2, v5, v9, v13, m3)
	m4 := u64LE(d.buf[4*8 : 4*8+8])
	m5 := u64LE(d.buf[5*8 : 5*8+8])
	v2, v6, v10, v14 = g(v2+v6+m4, v6, v10, v14, m5)
	m6 := u64LE(d.buf[6*8 : 6*8+8])
	m7 := u64LE(d.buf[7*8 : 7*8+8])
	v3, v7, v11, v15 = g(v3+v7+m6, v7, v11, v15, m7)
	m8 := u64LE(d.buf[8*8 : 8*8+8])
	m9 := u64LE(d.buf[9*8 : 9*8+8])
	v0, v5, v10, v15 = g(v0+v5+m8, v5, v10, v15, m9)
	m10 := u64LE(d.buf[10*8 : 10*8+8])
	m11 := u64LE(d.buf[11*8 : 11*8+8])
	v1, v6, v11, v12 = g(v1+v6+m10, v6, v11, v12, m11)
	m12 := u64LE(d.buf[12*8 : 12*8+8])
	m13 := u64LE(d.buf[13*8 : 13*8+8])
	v2, v7, v8, v13 = g(v2+v7+m12, v7, v8, v13, m13)
	m14 := u64LE(d.buf[14*8 : 14*8+8])
	m15 := u64LE(d.buf[15*8 : 15*8+8])
	v3, v4, v9, v14 = g(v3+v4+m14, v4, v9, v14, m15)

	// Round 1
	v0, v4, v8, v12 = g(v0+v4+m14, v4, v8, v12, m10)
	v1, v5, v9, v13 = g(v1+v5+m4, v5, v9, v13, m8)
	v2, v6, v10, v14 = g(v2+v6+m9, v6, v10, v14, m15)
	v3, v7, v11, v15 = g(v3+v7+m13, v7, v11, v15, m6)
	v0, v5, v10, v15 = g(v0+v5+m1, v5, v10, v15, m12)
	v1, v6, v11, v12 = g(v1+v6+m0, v6, v11, v12, m2)
	v2, v7, v8, v13 = g(v2+v7+m11, v7, v8, v13, m7)
	v3, v4, v9, v14 = g(v3+v4+m5, v4, v9, v14, m3)

	// Round 2
	v0, v4, v8, v12 = g(v0+v4+m11, v4, v8, v12, m8)
	v1, v5, v9, v13 = g(v1+v5+m12, v5, v9, v13, m0)
	v2, v6, v10, v14 = g(v2+v6+m5, v6, v10, v14, m2)
	v3, v7, v11, v15 = g(v3+v7+m15, v7, v11, v15, m13)
	v0, v5, v10, v15 = g(v0+v5+m10, v5, v10, v15, m14)
	v1, v6, v11, v12 = g(v1+v6+m3, v6, v11, v12, m6)
	v2, v7, v8, v13 = g(v2+v7+m7, v7, v8, v13, m1)
	v3, v4, v9, v14 = g(v3+v4+m9, v4, v9, v14, m4)

	// Round 3
	v0, v4, v8, v12 = g(v0+v4+m7, v4, v8, v12, m9)
	v1, v5, v9, v13 = g(v1+v5+m3, v5, v9, v13, m1)
	v2, v6, v10, v14 = g(v2+v6+m13, v6, v10, v14, m12)
	v3, v7, v11, v15 = g(v3+v7+m11, v7, v11, v15, m14)
	v0, v5, v10, v15 = g(v0+v5+m2, v5, v10, v15, m6)
	v1, v6, v11, v12 = g(v1+v6+m5, v6, v11, v12, m10)
	v2, v7, v8, v13 = g(v2+v7+m4, v7, v8, v13, m0)
	v3, v4, v9, v14 = g(v3+v4+m15, v4, v9, v14, m8)

	// Round 4
	v0, v4, v8, v12 = g(v0+v4+m9, v4, v8, v12, m0)
	v1, v5, v9, v13 = g(v1+v5+m5, v5, v9, v13, m7)
	v2, v6, v10, v14 = g(v2+v6+m2, v6, v10, v14, m4)
	v3, v7, v11, v15 = g(v3+v7+m10, v7, v11, v15, m15)
	v0, v5, v10, v15 = g(v0+v5+m14, v5, v10, v15, m1)
	v1, v6, v11, v12 = g(v1+v6+m11, v6, v11, v12, m12)
	v2, v7, v8, v13 = g(v2+v7+m6, v7, v8, v13, m8)
	v3, v4, v9, v14 = g(v3+v4+m3, v4, v9, v14, m13)

	// Round 5
	v0, v4, v8, v12 = g(v0+v4+m2, v4, v8, v12, m12)
	v1, v5, v9, v13 = g(v1+v5+m6, v5, v9, v13, m10)
	v2, v6, v10, v14 = g(v2+v6+m0, v6, v10, v14, m11)
	v3, v7, v11, v15 = g(v3+v7+m8, v7, v11, v15, m3)
	v0, v5, v10, v15 = g(v0+v5+m4, v5, v10, v15, m13)
	v1, v6, v11, v12 = g(v1+v6+m7, v6, v11, v12, m5)
	v2, v7, v8, v13 = g(v2+v7+m15, v7, v8, v13, m14)
	v3, v4, v9, v14 = g(v3+v4+m1, v4, v9, v14, m9)

	// Round 6
	v0, v4, v8, v12 = g(v0+v4+m12, v4, v8, v12, m5)
	v1, v5, v9, v13 = g(v1+v5+m1, v5, v9, v13, m15)
	v2, v6, v10, v14 = g(v2+v6+m14, v6, v10, v14, m13)
	v3, v7, v11, v15 = g(v3+v7+m4, v7, v11, v15, m10)
	v0, v5, v10, v15 = g(v0+v5+m0, v5, v10, v15, m7)
	v1, v6, v11, v12 = g(v1+v6+m6, v6, v11, v12, m3)
	v2, v7, v8, v13 = g(v2+v7+m9, v7, v8, v13, m2)
	v3, v4, v9, v14 = g(v3+v4+m8, v4, v9, v14, m11)

	// Round 7
	v0, v4, v8, v12 = g(v0+v4+m13, v4, v8, v12, m11)
	v1, v5, v9, v13 = g(v1+v5+m7, v5, v9, v13, m14)
	v2, v6, v10, v14 = g(v2+v6+m12, v6, v10, v14, m1)
	v3, v7, v11, v15 = g(v3+v7+m3, v7, v11, v15, m9)
	v0, v5, v10, v15 = g(v0+v5+m5, v5, v10, v15, m0)
	v1, v6, v11, v12 = g(v1+v6+m15, v6, v11, v12, m4)
	v2, v7, v8, v13 = g(v2+v7+m8, v7, v8, v13, m6)
	v3, v4, v9, v14 = g(v3+v4+m2, v4, v9, v14, m10)

	// Round 8
	v0, v4, v8, v12 = g(v0+v4+m6, v4, v8, v12, m15)
	v1, v5, v9, v13 = g(v1+v5+m14, v5, v9, v13, m9)
	v2, v6, v10, v14 = g(v2+v6+m11, v6, v10, v14, m3)
	v3, v7, v11, v15 = g(v3+v7+m0, v7, v11, v15, m8)
	v0, v5, v10, v15 = g(v0+v5+m12, v5, v10, v15, m2)
	v1, v6, v11, v12 = g(v1+v6+m13, v6, v11, v12, m7)
	v2, v7, v8, v13 = g(v2+v7+m1, v7, v8, v13, m4)
	v3, v4, v9, v14 = g(v3+v4+m10, v4, v9, v14, m5)

	// Round 9
	v0, v4, v8, v12 = g(v0+v4+m10, v4, v8, v12, m2)
	v1, v5, v9, v13 = g(v1+v5+m8, v5, v9, v13, m4)
	v2, v6, v10, v14 = g(v2+v6+m7, v6, v10, v14, m6)
	v3, v7, v11, v15 = g(v3+v7+m1, v7, v11, v15, m5)
	v0, v5, v10, v15 = g(v0+v5+m15, v5, v10, v15, m11)
	v1, v6, v11, v12 = g(v1+v6+m9, v6, v11, v12, m14)
	v2, v7, v8, v13 = g(v2+v7+m3, v7, v8, v13, m12)
	v3, v4, v9, v14 = g(v3+v4+m13, v4, v9, v14, m0)

	// Round 10 repeats round 0's permutation
	v0, v4, v8, v12 = g(v0+v4+m0, v4, v8, v12, m1)
	v1, v5, v9, v13 = g(v1+v5+m2, v5, v9, v13, m3)
	v2, v6, v10, v14 = g(v2+v6+m4, v6, v10, v14, m5)
	v3, v7, v11, v15 = g(v3+v7+m6, v7, v11, v15, m7)
	v0, v5, v10, v15 = g(v0+v5+m8, v5, v10, v15, m9)
	v1, v6, v11, v12 = g(v1+v6+m10, v6, v11, v12, m11)
	v2, v7, v8, v13 = g(v2+v7+m12, v7, v8, v13, m13)
	v3, v4, v9, v14 = g(v3+v4+m14, v4, v9, v14, m15)

	// Round 11 repeats round 1's permutation
	v0, v4, v8, v12 = g(v0+v4+m14, v4, v8, v12, m10)
	v1, v5, v9, v13 = g(v1+v5+m4, v5, v9, v13, m8)
	v2, v6, v10, v14 = g(v2+v6+m9, v6, v10, v14, m15)
	v3, v7, v11, v15 = g(v3+v7+m13, v7, v11, v15, m6)
	v0, v5, v10, v15 = g(v0+v5+m1, v5, v10, v15, m12)
	v1, v6, v11, v12 = g(v1+v6+m0, v6, v11, v12, m2)
	v2, v7, v8, v13 = g(v2+v7+m11, v7, v8, v13, m7)
	v3, v4, v9, v14 = g(v3+v4+m5, v4, v9, v14, m3)

	d.h[0] ^= v0 ^ v8
	d.h[1] ^= v1 ^ v9
	d.h[2] ^= v2 ^ v10
	d.h[3] ^= v3 ^ v11
	d.h[4] ^= v4 ^ v12
	d.h[5] ^= v5 ^ v13
	d.h[6] ^= v6 ^ v14
	d.h[7] ^= v7 ^ v15
}

// g is one quarter-round of the BLAKE2b mixing function, with the initial
// a+b+m addition lifted into the caller.
func g(a, b, c, d, m uint64) (uint64, uint64, uint64, uint64) {
	d = ((d ^ a) >> 32) | ((d ^ a) << 32)
	c = c + d
	b = ((b ^ c) >> 24) | ((b ^ c) << 40)
	a = a + b + m
	d = ((d ^ a) >> 16) | ((d ^ a) << 48)
	c = c + d
	b = ((b ^ c) >> 63) | ((b ^ c) << 1)

	return a, b, c, d
}
