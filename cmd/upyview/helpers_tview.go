// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2019-2025 Intel Corporation

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	cz "github.com/edualvarado/unity-footprints/pkgs/colorize"
)

// TitleColor - Set the title color to the windows
func TitleColor(msg string) string {

	return fmt.Sprintf("[%s]", cz.Orange(msg))
}

// TitleBox to return the top title window
func TitleBox(flex *tview.Flex) *tview.Box {

	box := tview.NewBox().
		SetBorder(true).
		SetTitle(UPyViewInfo(true)).
		SetTitleAlign(tview.AlignLeft)

	flex.AddItem(box, 2, 1, false)

	return box
}

// CreateTextView - helper routine to create a TextView
func CreateTextView(flex *tview.Flex, msg string, align, fixedSize, proportion int, focus bool) *tview.TextView {

	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	textView.SetBorder(true).
		SetTitle(TitleColor(msg)).
		SetTitleAlign(align)

	flex.AddItem(textView, fixedSize, proportion, focus)

	return textView
}

// CreateTableView - Helper to create a Table
func CreateTableView(flex *tview.Flex, msg string, align, fixedSize, proportion int, focus bool) *tview.Table {
	table := tview.NewTable().
		SetFixed(1, 0).
		SetEvaluateAllRows(true)

	table.SetBorder(true).
		SetTitle(TitleColor(msg)).
		SetTitleAlign(align)

	flex.AddItem(table, fixedSize, proportion, focus)

	return table
}

// CreateButton - Helper to create a bordered button
func CreateButton(flex *tview.Flex, label string, fixedSize, proportion int, selected func()) *tview.Button {

	button := tview.NewButton(label).
		SetSelectedFunc(selected)

	button.SetBorder(true)
	button.SetBackgroundColor(tcell.ColorDefault)

	flex.AddItem(button, fixedSize, proportion, false)

	return button
}

// SetCell fills the cell at row, col with msg. An int argument is the
// alignment (right by default), a bool marks the cell selectable.
func SetCell(table *tview.Table, row, col int, msg string, a ...interface{}) *tview.TableCell {

	align := tview.AlignRight
	selectable := false
	for _, v := range a {
		switch t := v.(type) {
		case int:
			align = t
		case bool:
			selectable = t
		}
	}
	tableCell := tview.NewTableCell(msg).
		SetAlign(align).
		SetSelectable(selectable)
	table.SetCell(row, col, tableCell)

	return tableCell
}
