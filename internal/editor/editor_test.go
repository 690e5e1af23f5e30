package editor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage builds a 2x1 image with distinct corner colors so orientation
// changes are observable.
func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestZeroAdjustmentsIsIdentity(t *testing.T) {
	ed, err := Load(testImage(t))
	require.NoError(t, err)

	out, err := ed.Apply(Adjustments{})
	require.NoError(t, err)
	assert.Equal(t, ed.Original().Bounds(), out.Bounds())
	assert.Equal(t, nrgbaAt(ed.Original(), 0, 0), nrgbaAt(out, 0, 0))
}

func TestRotateFourTimesRestoresOrientation(t *testing.T) {
	ed, err := Load(testImage(t))
	require.NoError(t, err)

	// one pass rotates 90°; four chained passes come back around
	data := testImage(t)
	for i := 0; i < 4; i++ {
		cur, err := Load(data)
		require.NoError(t, err)
		img, err := cur.Apply(Adjustments{Rotate: 90})
		require.NoError(t, err)
		rendered, _, err := Render(img, "image/png")
		require.NoError(t, err)
		data = rendered
	}

	final, err := Load(data)
	require.NoError(t, err)
	orig := ed.Original()
	got := final.Original()
	require.Equal(t, orig.Bounds(), got.Bounds())
	assert.Equal(t, nrgbaAt(orig, 0, 0), nrgbaAt(got, 0, 0))
	assert.Equal(t, nrgbaAt(orig, 1, 0), nrgbaAt(got, 1, 0))
}

func TestRotate360IsIdentityInOnePass(t *testing.T) {
	ed, err := Load(testImage(t))
	require.NoError(t, err)
	out, err := ed.Apply(Adjustments{Rotate: 360})
	require.NoError(t, err)
	assert.Equal(t, ed.Original().Bounds(), out.Bounds())
	assert.Equal(t, nrgbaAt(ed.Original(), 0, 0), nrgbaAt(out, 0, 0))
}

func TestRotateSwapsDimensions(t *testing.T) {
	ed, err := Load(testImage(t))
	require.NoError(t, err)
	out, err := ed.Apply(Adjustments{Rotate: 90})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Bounds().Dx())
	assert.Equal(t, 2, out.Bounds().Dy())
}

func TestFlipHorizontal(t *testing.T) {
	ed, err := Load(testImage(t))
	require.NoError(t, err)
	out, err := ed.Apply(Adjustments{FlipH: true})
	require.NoError(t, err)
	// red pixel moves from the left edge to the right edge
	assert.Equal(t, nrgbaAt(ed.Original(), 0, 0), nrgbaAt(out, 1, 0))
}

func TestAdjustmentsNeverCompound(t *testing.T) {
	ed, err := Load(testImage(t))
	require.NoError(t, err)

	// apply a heavy adjustment, then the identity: the second render must
	// come from the original, not the brightened output
	_, err = ed.Apply(Adjustments{Brightness: 80})
	require.NoError(t, err)
	out, err := ed.Apply(Adjustments{})
	require.NoError(t, err)
	assert.Equal(t, nrgbaAt(ed.Original(), 0, 0), nrgbaAt(out, 0, 0))
}

func TestValidateRejectsBadInput(t *testing.T) {
	assert.ErrorIs(t, Adjustments{Rotate: 45}.Validate(), ErrBadAdjustments)
	assert.ErrorIs(t, Adjustments{Brightness: 150}.Validate(), ErrBadAdjustments)
	assert.ErrorIs(t, Adjustments{Blur: -1}.Validate(), ErrBadAdjustments)
	assert.NoError(t, Adjustments{Rotate: -90, Brightness: -40, Blur: 2}.Validate())
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte("not an image"))
	assert.Error(t, err)
}
