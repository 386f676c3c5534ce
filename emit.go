package rtlasm

// This file holds one constructor per opcode. Constructors that move data
// between places additionally record an operand descriptor in the buffer's
// matrix; pure arithmetic triples only encode a header.

// Return emits a return instruction.
func (b *Buffer) Return() error {
	return b.emitNone(OpReturn)
}

// Enter emits a frame-setup instruction with a 24-bit immediate.
func (b *Buffer) Enter(imm uint32) error {
	return b.emitImm(OpEnter, imm)
}

// Leave emits a frame-teardown instruction with a 24-bit immediate.
func (b *Buffer) Leave(imm uint32) error {
	return b.emitImm(OpLeave, imm)
}

// Call emits a direct call to addr, encoded as the shortest trailing
// immediate holding addr.
func (b *Buffer) Call(addr uint64) error {
	return b.emitRel(OpCall, 0, 0, addr)
}

// CallIndirect emits a call through the dest register. The trailing
// immediate is zero but always occupies 8 bytes, leaving a full patch
// window for the linker.
func (b *Buffer) CallIndirect(dest uint8) error {
	return b.emitRelN(OpCallIndirect, ISize64, dest, 0, 8)
}

// Branch emits an unconditional branch to addr.
func (b *Buffer) Branch(addr uint64) error {
	return b.emitRel(OpBranch, 0, 0, addr)
}

// BranchCarry emits a branch taken when the carry flag is set.
func (b *Buffer) BranchCarry(addr uint64) error {
	return b.emitRel(OpBranchCarry, 0, 0, addr)
}

// BranchOverflow emits a branch taken when the overflow flag is set.
func (b *Buffer) BranchOverflow(addr uint64) error {
	return b.emitRel(OpBranchOverflow, 0, 0, addr)
}

// BranchEqual emits a branch taken when the last compare was equal.
func (b *Buffer) BranchEqual(addr uint64) error {
	return b.emitRel(OpBranchEqual, 0, 0, addr)
}

// BranchNotEqual emits a branch taken when the last compare was not equal.
func (b *Buffer) BranchNotEqual(addr uint64) error {
	return b.emitRel(OpBranchNotEqual, 0, 0, addr)
}

// BranchLess emits a branch taken on less-than.
func (b *Buffer) BranchLess(addr uint64) error {
	return b.emitRel(OpBranchLess, 0, 0, addr)
}

// BranchLessEq emits a branch taken on less-than-or-equal.
func (b *Buffer) BranchLessEq(addr uint64) error {
	return b.emitRel(OpBranchLessEq, 0, 0, addr)
}

// BranchGreater emits a branch taken on greater-than.
func (b *Buffer) BranchGreater(addr uint64) error {
	return b.emitRel(OpBranchGreater, 0, 0, addr)
}

// BranchGreaterEq emits a branch taken on greater-than-or-equal.
func (b *Buffer) BranchGreaterEq(addr uint64) error {
	return b.emitRel(OpBranchGreaterEq, 0, 0, addr)
}

func (b *Buffer) iarith(op Opcode, size SizeClass, dest, src1, src2 uint8) error {
	if err := checkISize(size); err != nil {
		return err
	}
	return b.emitArith(op, size, dest, src1, src2)
}

// IAdd emits dest = src1 + src2.
func (b *Buffer) IAdd(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIAdd, size, dest, src1, src2)
}

// IAddCarry emits dest = src1 + src2 + carry.
func (b *Buffer) IAddCarry(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIAddCarry, size, dest, src1, src2)
}

// IAnd emits dest = src1 & src2.
func (b *Buffer) IAnd(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIAnd, size, dest, src1, src2)
}

// IOr emits dest = src1 | src2.
func (b *Buffer) IOr(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIOr, size, dest, src1, src2)
}

// IXor emits dest = src1 ^ src2.
func (b *Buffer) IXor(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIXor, size, dest, src1, src2)
}

// ISubtract emits dest = src1 - src2.
func (b *Buffer) ISubtract(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpISubtract, size, dest, src1, src2)
}

// ICompare emits a flag-setting compare of src1 and src2 into dest.
func (b *Buffer) ICompare(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpICompare, size, dest, src1, src2)
}

// IMultiplyUnsigned emits dest = src1 * src2, unsigned.
func (b *Buffer) IMultiplyUnsigned(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIMultiplyUnsigned, size, dest, src1, src2)
}

// IMultiplySigned emits dest = src1 * src2, signed.
func (b *Buffer) IMultiplySigned(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIMultiplySigned, size, dest, src1, src2)
}

// IDivideUnsigned emits dest = src1 / src2, unsigned.
func (b *Buffer) IDivideUnsigned(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIDivideUnsigned, size, dest, src1, src2)
}

// IDivideSigned emits dest = src1 / src2, signed.
func (b *Buffer) IDivideSigned(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIDivideSigned, size, dest, src1, src2)
}

// IModuloUnsigned emits dest = src1 % src2, unsigned.
func (b *Buffer) IModuloUnsigned(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIModuloUnsigned, size, dest, src1, src2)
}

// IModuloSigned emits dest = src1 % src2, signed.
func (b *Buffer) IModuloSigned(size SizeClass, dest, src1, src2 uint8) error {
	return b.iarith(OpIModuloSigned, size, dest, src1, src2)
}

// IMoveImmediate emits dest = imm with the shortest trailing immediate
// holding imm.
func (b *Buffer) IMoveImmediate(size SizeClass, dest uint8, imm uint64) error {
	if err := checkISize(size); err != nil {
		return err
	}
	if err := b.emitRel(OpIMoveImmediate, size, dest, imm); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandGPReg,
		Value:  OperandImmediate,
		V1:     regOperand(dest, size),
		V2:     immOperand(imm),
	})
	return nil
}

// IMoveUnsigned emits a zero-extending move from a src register of width
// size2 into a dest register of width size.
func (b *Buffer) IMoveUnsigned(size SizeClass, dest, src uint8, size2 SizeClass) error {
	return b.imove(OpIMoveUnsigned, size, dest, src, size2, false)
}

// IMoveSigned emits a sign-extending move from a src register of width
// size2 into a dest register of width size.
func (b *Buffer) IMoveSigned(size SizeClass, dest, src uint8, size2 SizeClass) error {
	return b.imove(OpIMoveSigned, size, dest, src, size2, true)
}

func (b *Buffer) imove(op Opcode, size SizeClass, dest, src uint8, size2 SizeClass, ext bool) error {
	if err := checkISize(size); err != nil {
		return err
	}
	if err := checkISize(size2); err != nil {
		return err
	}
	if err := b.emitArithB(op, size, dest, src, size2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandGPReg,
		Value:  OperandGPReg,
		V1:     regOperand(dest, size),
		V2:     extOperand(src, size2, ext),
	})
	return nil
}

// ILoad emits dest = [src1 + src2].
func (b *Buffer) ILoad(size SizeClass, dest, src1, src2 uint8) error {
	if err := checkISize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpILoad, size, dest, src1, src2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandGPReg,
		Value:  OperandMemIndirect,
		V1:     regOperand(dest, size),
		V2:     indirectOperand(src1, src2),
	})
	return nil
}

// IStore emits [src1 + src2] = dest.
func (b *Buffer) IStore(size SizeClass, dest, src1, src2 uint8) error {
	if err := checkISize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpIStore, size, dest, src1, src2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandMemIndirect,
		Value:  OperandGPReg,
		V1:     indirectOperand(src1, src2),
		V2:     regOperand(dest, size),
	})
	return nil
}

// IPop emits dest = pop(), a 64-bit read of [RSP - 8] after adjustment.
func (b *Buffer) IPop(dest uint8) error {
	if err := b.emitArith(OpIPop, ISize64, dest, 0, 0); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandGPReg,
		Value:  OperandMemBase,
		V1:     regOperand(dest, ISize64),
		V2:     baseOperand(RSP, -8),
	})
	return nil
}

// IPush emits push(src), a 64-bit write of [RSP + 0] before adjustment.
func (b *Buffer) IPush(src uint8) error {
	if err := b.emitArith(OpIPush, ISize64, src, 0, 0); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandMemIndirect,
		Value:  OperandGPReg,
		V1:     baseOperand(RSP, 0),
		V2:     regOperand(src, ISize64),
	})
	return nil
}

func (b *Buffer) farith(op Opcode, size SizeClass, dest, src1, src2 uint8) error {
	if err := checkFSize(size); err != nil {
		return err
	}
	return b.emitArith(op, size, dest, src1, src2)
}

// FAdd emits dest = src1 + src2 on float registers.
func (b *Buffer) FAdd(size SizeClass, dest, src1, src2 uint8) error {
	return b.farith(OpFAdd, size, dest, src1, src2)
}

// FSubtract emits dest = src1 - src2 on float registers.
func (b *Buffer) FSubtract(size SizeClass, dest, src1, src2 uint8) error {
	return b.farith(OpFSubtract, size, dest, src1, src2)
}

// FCompare emits a flag-setting float compare of src1 and src2 into dest.
func (b *Buffer) FCompare(size SizeClass, dest, src1, src2 uint8) error {
	return b.farith(OpFCompare, size, dest, src1, src2)
}

// FMultiply emits dest = src1 * src2 on float registers.
func (b *Buffer) FMultiply(size SizeClass, dest, src1, src2 uint8) error {
	return b.farith(OpFMultiply, size, dest, src1, src2)
}

// FDivide emits dest = src1 / src2 on float registers.
func (b *Buffer) FDivide(size SizeClass, dest, src1, src2 uint8) error {
	return b.farith(OpFDivide, size, dest, src1, src2)
}

// FMove emits dest = src between float registers of the same width.
func (b *Buffer) FMove(size SizeClass, dest, src uint8) error {
	if err := checkFSize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpFMove, size, dest, src, 0); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandFPReg,
		Value:  OperandFPReg,
		V1:     regOperand(dest, size),
		V2:     extOperand(src, size, true),
	})
	return nil
}

// FLoad emits dest = [src1 + src2] into a float register.
func (b *Buffer) FLoad(size SizeClass, dest, src1, src2 uint8) error {
	if err := checkFSize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpFLoad, size, dest, src1, src2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandFPReg,
		Value:  OperandMemIndirect,
		V1:     regOperand(dest, size),
		V2:     indirectOperand(src1, src2),
	})
	return nil
}

// FStore emits [src1 + src2] = dest from a float register.
func (b *Buffer) FStore(size SizeClass, dest, src1, src2 uint8) error {
	if err := checkFSize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpFStore, size, dest, src1, src2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandMemIndirect,
		Value:  OperandFPReg,
		V1:     indirectOperand(src1, src2),
		V2:     regOperand(dest, size),
	})
	return nil
}

// FPop emits dest = pop() into a float register.
func (b *Buffer) FPop(dest uint8) error {
	if err := b.emitArith(OpFPop, FSize64, dest, 0, 0); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandFPReg,
		Value:  OperandMemBase,
		V1:     regOperand(dest, FSize64),
		V2:     baseOperand(RSP, -8),
	})
	return nil
}

// FPush emits push(src) from a float register.
func (b *Buffer) FPush(src uint8) error {
	if err := b.emitArith(OpFPush, FSize64, src, 0, 0); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandMemIndirect,
		Value:  OperandFPReg,
		V1:     baseOperand(RSP, 0),
		V2:     regOperand(src, FSize64),
	})
	return nil
}

// F2I emits an integer dest of width size from a float src of width size2.
func (b *Buffer) F2I(size SizeClass, dest, src uint8, size2 SizeClass) error {
	if err := checkISize(size); err != nil {
		return err
	}
	if err := checkFSize(size2); err != nil {
		return err
	}
	return b.emitArithB(OpF2I, size, dest, src, size2)
}

// I2F emits a float dest of width size from an integer src of width size2.
func (b *Buffer) I2F(size SizeClass, dest, src uint8, size2 SizeClass) error {
	if err := checkFSize(size); err != nil {
		return err
	}
	if err := checkISize(size2); err != nil {
		return err
	}
	return b.emitArithB(OpI2F, size, dest, src, size2)
}

// Extend widens the float in dest from 32 to 64 bits in place.
func (b *Buffer) Extend(dest uint8) error {
	return b.emitArith(OpExtend, FSize32, dest, 0, 0)
}

// Truncate narrows the float in dest from 64 to 32 bits in place. It
// shares its opcode with Extend; the size field selects the direction.
func (b *Buffer) Truncate(dest uint8) error {
	return b.emitArith(OpTruncate, FSize64, dest, 0, 0)
}

// F2Bits emits an integer dest holding the raw bits of the float src.
func (b *Buffer) F2Bits(size SizeClass, dest, src uint8) error {
	return b.farith(OpF2Bits, size, dest, src, 0)
}

// Bits2F emits a float dest reinterpreted from the raw bits in the integer
// src.
func (b *Buffer) Bits2F(size SizeClass, dest, src uint8) error {
	return b.farith(OpBits2F, size, dest, src, 0)
}

func (b *Buffer) varith(op Opcode, size SizeClass, dest, src1, src2 uint8) error {
	if err := checkVSize(size); err != nil {
		return err
	}
	return b.emitArith(op, size, dest, src1, src2)
}

// VAdd emits an elementwise dest = src1 + src2 on vector registers.
func (b *Buffer) VAdd(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVAdd, size, dest, src1, src2)
}

// VSubtract emits an elementwise dest = src1 - src2 on vector registers.
func (b *Buffer) VSubtract(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVSubtract, size, dest, src1, src2)
}

// VMultiplyF emits dest = src1 * src2 with a scalar float src2.
func (b *Buffer) VMultiplyF(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVMultiplyF, size, dest, src1, src2)
}

// VDivideF emits dest = src1 / src2 with a scalar float src2.
func (b *Buffer) VDivideF(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVDivideF, size, dest, src1, src2)
}

// VMultiply emits an elementwise dest = src1 * src2.
func (b *Buffer) VMultiply(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVMultiply, size, dest, src1, src2)
}

// VDivide emits an elementwise dest = src1 / src2.
func (b *Buffer) VDivide(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVDivide, size, dest, src1, src2)
}

// VDot emits the dot product of src1 and src2 into dest.
func (b *Buffer) VDot(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVDot, size, dest, src1, src2)
}

// VCross emits the cross product of src1 and src2 into dest.
func (b *Buffer) VCross(size SizeClass, dest, src1, src2 uint8) error {
	return b.varith(OpVCross, size, dest, src1, src2)
}

// VLoad emits dest = [src1 + src2] into a vector register.
func (b *Buffer) VLoad(size SizeClass, dest, src1, src2 uint8) error {
	if err := checkVSize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpVLoad, size, dest, src1, src2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandVReg,
		Value:  OperandMemIndirect,
		V1:     regOperand(dest, size),
		V2:     indirectOperand(src1, src2),
	})
	return nil
}

// VStore emits [src1 + src2] = dest from a vector register.
func (b *Buffer) VStore(size SizeClass, dest, src1, src2 uint8) error {
	if err := checkVSize(size); err != nil {
		return err
	}
	if err := b.emitArith(OpVStore, size, dest, src1, src2); err != nil {
		return err
	}
	b.appendElement(Element{
		Offset: b.Len(),
		Place:  OperandMemIndirect,
		Value:  OperandVReg,
		V1:     indirectOperand(src1, src2),
		V2:     regOperand(dest, size),
	})
	return nil
}

// VExtend widens the vector in dest with the scalar in src.
func (b *Buffer) VExtend(size SizeClass, dest, src uint8) error {
	return b.varith(OpVExtend, size, dest, src, 0)
}

// VTruncate drops the top lane of the vector in dest.
func (b *Buffer) VTruncate(size SizeClass, dest uint8) error {
	return b.varith(OpVTruncate, size, dest, 0, 0)
}
